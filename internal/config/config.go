package config // package config loads application configuration from environment variables

import (
    "log"  // log is used to report configuration errors and halt execution
    "os"   // os provides access to environment variables
    "time" // time is used for the upstream call timeout
)

// Config holds all runtime configuration values.  It is built once in main
// and passed by reference to every component that needs it; business logic
// never reads ambient process state.  Each field corresponds to an
// environment variable.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    DBUser          string        // database username
    DBPass          string        // database password (optional)
    DBHost          string        // database host address
    DBPort          string        // database port number
    DBName          string        // database name
    SigningSecret   string        // shared secret used to sign credentials across all services
    DirectoryURL    string        // base URL of the attendee (person directory) service
    RosterURL       string        // base URL of the class roster service
    RoomURL         string        // base URL of the room registry service
    ScheduleURL     string        // base URL of the schedule service
    UpstreamTimeout time.Duration // per-call timeout for every downstream request
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Service URLs default
// to local development addresses.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),           // environment (dev/test/prod)
        Port:            must("APP_PORT"),          // port to bind the HTTP server
        DBUser:          must("DB_USER"),           // database user
        DBPass:          os.Getenv("DB_PASS"),      // database password (empty allowed)
        DBHost:          must("DB_HOST"),           // database host
        DBPort:          must("DB_PORT"),           // database port
        DBName:          must("DB_NAME"),           // database name
        SigningSecret:   must("CREDENTIAL_SECRET"), // shared credential-signing secret
        DirectoryURL:    getenv("ATTENDEE_SERVICE_URL", "http://localhost:8001"),
        RosterURL:       getenv("CLASS_SERVICE_URL", "http://localhost:8002"),
        RoomURL:         getenv("ROOM_SERVICE_URL", "http://localhost:8003"),
        ScheduleURL:     getenv("SCHEDULE_SERVICE_URL", "http://localhost:8004"),
        UpstreamTimeout: time.Duration(envInt("UPSTREAM_TIMEOUT_SEC", 10)) * time.Second,
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
