package container

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

// Options configures the server and the consumer. The server fills it from
// flags and SERVICE_* variables through humacli, the consumer from the env
// tags.
type Options struct {
	Port        int    `default:"8888"           help:"Port to listen on"                              short:"p"`
	CodeLength  int    `default:"6"              help:"Length of generated short codes (4-16)"         short:"c"`
	MaxAttempts int    `default:"5"              help:"Codes tried before giving up on a collision"`
	Storage     string `default:"memory"         help:"Link storage: memory, redis, postgres or bolt" short:"s"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                           short:"r"  env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	DatabaseURL string `default:""               help:"PostgreSQL connection string"                              env:"DATABASE_URL"`
	BoltPath    string `default:"shortener.db"   help:"Bolt database file"`
	CacheTTL    int    `default:"0"              help:"Seconds to cache links in Redis, 0 disables"`
	Analytics   bool   `default:"false"          help:"Publish analytics events to Redis Streams"`
	LogFormat   string `default:"console"        help:"Log format: console or json"                               env:"LOG_FORMAT"     envDefault:"console"`
	LogLevel    string `default:"info"           help:"Log level"                                                 env:"LOG_LEVEL"      envDefault:"info"`
	LogFile     string `default:""               help:"Also write JSON logs to this rotated file"                 env:"LOG_FILE"`

	ConsumerGroup string `default:"analytics" help:"Redis Streams consumer group" env:"CONSUMER_GROUP" envDefault:"analytics"`
}

// UsesRedis reports whether any enabled component needs a Redis connection.
func (o *Options) UsesRedis() bool {
	return o.Storage == StorageRedis || o.CacheTTL > 0 || o.Analytics
}
