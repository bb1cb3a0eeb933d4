package main // Entry point package

import (
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/nalinda/stockroom/internal/blacklist"
    "github.com/nalinda/stockroom/internal/config"
    "github.com/nalinda/stockroom/internal/database"
    "github.com/nalinda/stockroom/internal/handler"
    "github.com/nalinda/stockroom/internal/jobs"
    appmw "github.com/nalinda/stockroom/internal/middleware"
    "github.com/nalinda/stockroom/internal/queue"
    "github.com/nalinda/stockroom/internal/router"
    "github.com/nalinda/stockroom/internal/repository"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer func() { _ = db.Close() }()

    // Redis backs the blacklist, the rate limiter and the response cache.
    // Without it the limiter and cache disable themselves and the
    // blacklist degrades to a single-process in-memory store.
    rdb := config.NewRedisClient()
    var revoked blacklist.Store
    if rdb != nil {
        revoked = blacklist.NewRedisStore(rdb, "blacklist")
    } else {
        log.Println("redis unavailable: falling back to in-memory blacklist")
        revoked = blacklist.NewMemoryStore()
    }

    users := repository.NewUserRepo(db)
    customers := repository.NewCustomerRepo(db)
    categories := repository.NewCategoryRepo(db)
    products := repository.NewProductRepo(db)
    orders := repository.NewOrderRepo(db)
    tokens := repository.NewTokenRepo(db)

    authH := handler.NewAuthHandler(cfg, users, customers, tokens, revoked)
    catalogH := handler.NewCatalogHandler(products, categories)
    adminH := handler.NewAdminHandler(products, categories, customers, users, orders)
    customerH := handler.NewCustomerHandler(customers, users, products, orders)

    e := echo.New()
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    rlCfg := config.LoadRateLimitConfig()
    e.Use(appmw.NewTokenBucket(rlCfg, rdb))

    // Credential endpoints carry a second, much tighter bucket keyed by
    // ip and route, so brute-forcing logins exhausts long before the
    // global limit does.
    authRL := rlCfg
    authRL.Capacity = 10
    authRL.RefillTokens = 1
    authRL.RefillInterval = 6 * time.Second
    authRL.KeyStrategy = "ip_route"
    authRL.Prefix = rlCfg.Prefix + ":auth"

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, users, revoked, cfg.JWTSecret, appmw.NewTokenBucket(authRL, rdb))
    router.RegisterPublic(e, catalogH, appmw.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterAdmin(e, adminH, users, revoked, cfg.JWTSecret)
    router.RegisterCustomer(e, customerH, users, revoked, cfg.JWTSecret)

    // Periodic revocation cleanup: expired blacklist entries and refresh
    // token rows.
    cleanup, err := jobs.StartCleanup(cfg.CleanupSchedule, revoked, tokens)
    if err != nil {
        log.Fatalf("cleanup job: %v", err)
    }
    defer cleanup.Stop()

    // Order events are consumed in the background; the consumer keeps
    // its own reconnect loop.
    go func() {
        if err := queue.StartOrderConsumer(); err != nil {
            log.Printf("order consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
