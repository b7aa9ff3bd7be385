// Command quickstart walks through the Connect flow end to end: it serves a
// /login route that redirects the user into Connect, captures the redirect
// on /callback, exchanges the code for tokens, and reads a few endpoints
// from the first connected vehicle.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	smartcar "github.com/langchou/smartcar-go"
)

type config struct {
	Port         string
	Debug        bool
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func loadConfig() *config {
	// .env file is optional
	_ = godotenv.Load()

	return &config{
		Port:         getEnv("PORT", "3000"),
		Debug:        getEnvBool("DEBUG", true),
		ClientID:     os.Getenv("SMARTCAR_CLIENT_ID"),
		ClientSecret: os.Getenv("SMARTCAR_CLIENT_SECRET"),
		RedirectURI:  getEnv("SMARTCAR_REDIRECT_URI", "http://localhost:3000/callback"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// pendingStates tracks the state values we handed out on /login so the
// callback can reject redirects we never initiated.
type pendingStates struct {
	mu     sync.Mutex
	states map[string]struct{}
}

func newPendingStates() *pendingStates {
	return &pendingStates{states: make(map[string]struct{})}
}

func (p *pendingStates) issue() string {
	state := uuid.NewString()
	p.mu.Lock()
	p.states[state] = struct{}{}
	p.mu.Unlock()
	return state
}

func (p *pendingStates) consume(state string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.states[state]; !ok {
		return false
	}
	delete(p.states, state)
	return true
}

func main() {
	cfg := loadConfig()

	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		logger.Fatal("SMARTCAR_CLIENT_ID and SMARTCAR_CLIENT_SECRET must be set")
	}

	// test mode: the walkthrough uses simulated vehicles
	authClient := smartcar.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI, true).
		WithLogger(logger)
	states := newPendingStates()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/login", func(c *gin.Context) {
		scope := smartcar.NewScope(
			smartcar.PermissionReadVehicleInfo,
			smartcar.PermissionReadOdometer,
			smartcar.PermissionReadLocation,
			smartcar.PermissionControlSecurity,
		)

		authURL := authClient.GetAuthURL(scope, &smartcar.AuthURLOptions{
			ForcePrompt: true,
			State:       states.issue(),
		})

		logger.Info("redirecting to Connect", zap.String("url", authURL))
		c.Redirect(http.StatusFound, authURL)
	})

	router.GET("/callback", func(c *gin.Context) {
		if errParam := c.Query("error"); errParam != "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       errParam,
				"description": c.Query("error_description"),
			})
			return
		}
		if !states.consume(c.Query("state")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown state"})
			return
		}
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
			return
		}

		ctx := c.Request.Context()

		access, err := authClient.ExchangeCode(ctx, code)
		if err != nil {
			logger.Error("code exchange failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		vehicles, err := smartcar.GetVehicles(ctx, access.AccessToken, nil)
		if err != nil {
			logger.Error("vehicle listing failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if len(vehicles.VehicleIDs) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "no vehicles connected"})
			return
		}

		vehicle := smartcar.NewVehicle(vehicles.VehicleIDs[0], access.AccessToken).
			WithLogger(logger)

		attributes, err := vehicle.Attributes(ctx)
		if err != nil {
			logger.Error("attributes read failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		batch, err := vehicle.Batch(ctx, "/odometer", "/location")
		if err != nil {
			logger.Error("batch read failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		result := gin.H{
			"vehicle": fmt.Sprintf("%d %s %s", attributes.Year, attributes.Make, attributes.Model),
		}
		for _, sub := range batch.Responses {
			if sub.Err != nil {
				result[sub.Path] = sub.Err.Error()
				continue
			}
			switch {
			case sub.Body.Odometer != nil:
				result[sub.Path] = sub.Body.Odometer.Distance
			case sub.Body.Location != nil:
				result[sub.Path] = gin.H{
					"latitude":  sub.Body.Location.Latitude,
					"longitude": sub.Body.Location.Longitude,
				}
			}
		}

		c.JSON(http.StatusOK, result)
	})

	logger.Info("quickstart listening", zap.String("port", cfg.Port))
	logger.Info("open http://localhost:" + cfg.Port + "/login to start the Connect flow")

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}
