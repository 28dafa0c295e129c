// Package api contains all endpoints available
package api

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"bloodlink/donor-api/db"
	"bloodlink/donor-api/mailer"
	"bloodlink/donor-api/middleware"
	"bloodlink/donor-api/security"
	"bloodlink/donor-api/service"
	"bloodlink/donor-api/store"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Store  store.Store
	Router *gin.Engine
	Argon  *security.ArgonHash
	Mail   mailer.Mailer
	OTP    *service.OTP

	// donorsVer stamps the donor-listing cache key. Bumping it on a
	// directory write retires every cached listing at once, so a read
	// after a write always sees the new record.
	donorsVer atomic.Uint64
}

func NewRouter() (*API, error) {
	makeLogger()

	st, err := db.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB store, %w", err)
	}

	return newAPI(st, mailer.NewSMTP()), nil
}

// newAPI wires the router over any store/mailer pair. The test suite
// calls it with the in-memory store and a recording mailer.
func newAPI(st store.Store, mail mailer.Mailer) *API {
	a := &API{
		Store: st,
		Mail:  mail,
		Argon: security.New(),
	}
	a.OTP = service.NewOTP(st, mail, a.Argon)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:   []string{"Content-Length"},
			MaxAge:          12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	cacheStore := persist.NewMemoryStore(time.Minute)

	// GET / 			-> Static landing page
	router.StaticFile("/", "./public/first.html")
	router.Static("/public", "./public")

	// HEAD /heartbeat 		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// POST /send-otp 		-> Issues a signup OTP (email must be new)
	router.POST("/send-otp", a.SendOTP)

	// POST /send-ot 		-> Issues a recovery OTP (email must exist)
	router.POST("/send-ot", a.SendRecoveryOTP)

	// POST /verify-otp 		-> Verifies and burns an OTP
	router.POST("/verify-otp", a.VerifyOTP)

	// POST /reset-password 	-> Resets a password against an OTP
	router.POST("/reset-password", a.ResetPassword)

	// POST /register 		-> Registers a new donor
	router.POST("/register", a.UserRegister)

	// POST /login 			-> Checks credentials and sets an auth cookie
	router.POST("/login", a.UserLogin)

	// POST /update-profile 	-> Partial profile update by email
	router.POST("/update-profile", a.ProfileUpdate)

	// GET /donors 			-> Lists donors by blood group / locality
	router.GET("/donors", cache.Cache(cacheStore, 30*time.Second,
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: fmt.Sprintf("donors:%d:%s", a.donorsVer.Load(), c.Request.RequestURI),
			}
		}),
	), a.DonorList)

	// POST /request-blood 		-> Notifies matching donors by email
	router.POST("/request-blood", a.BloodRequest)

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
