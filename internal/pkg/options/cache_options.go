package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheBolt   = "bolt"
	CacheNone   = "none"
)

// CacheOptions configures the ranking cache backend.
type CacheOptions struct {
	Backend string        `json:"backend" mapstructure:"backend"`
	TTL     time.Duration `json:"ttl"     mapstructure:"ttl"`
	Redis   RedisOptions  `json:"redis"   mapstructure:"redis"`
	Memory  MemoryOptions `json:"memory"  mapstructure:"memory"`
	Bolt    BoltOptions   `json:"bolt"    mapstructure:"bolt"`
}

type RedisOptions struct {
	Host        string        `json:"host"         mapstructure:"host"`
	Port        int           `json:"port"         mapstructure:"port"`
	Password    string        `json:"-"            mapstructure:"password"`
	Database    int           `json:"database"     mapstructure:"database"`
	DialTimeout time.Duration `json:"dial-timeout" mapstructure:"dial-timeout"`
	OpTimeout   time.Duration `json:"op-timeout"   mapstructure:"op-timeout"`
}

type MemoryOptions struct {
	Size int `json:"size" mapstructure:"size"`
}

type BoltOptions struct {
	Path string `json:"path" mapstructure:"path"`
}

func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Backend: CacheRedis,
		TTL:     60 * time.Second,
		Redis: RedisOptions{
			Host:        envOr("REDIS_HOST", "redis"),
			Port:        envIntOr("REDIS_PORT", 6379),
			Password:    envOr("REDIS_PASSWORD", ""),
			DialTimeout: 2 * time.Second,
			OpTimeout:   500 * time.Millisecond,
		},
		Memory: MemoryOptions{Size: 256},
		Bolt:   BoltOptions{Path: "data/cache.db"},
	}
}

func (o *CacheOptions) Validate() []error {
	var errs []error
	switch o.Backend {
	case CacheRedis, CacheMemory, CacheBolt, CacheNone:
	default:
		errs = append(errs, fmt.Errorf("unsupported cache backend %q", o.Backend))
	}
	if o.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache ttl must be positive, got %s", o.TTL))
	}
	if o.Backend == CacheMemory && o.Memory.Size <= 0 {
		errs = append(errs, fmt.Errorf("cache memory size must be positive, got %d", o.Memory.Size))
	}
	return errs
}

func (o *RedisOptions) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func (o *CacheOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Backend, "cache.backend", o.Backend, "Ranking cache backend: redis, memory, bolt or none.")
	fs.DurationVar(&o.TTL, "cache.ttl", o.TTL, "Time-to-live of cached rankings.")
	fs.StringVar(&o.Redis.Host, "cache.redis.host", o.Redis.Host, "Redis host.")
	fs.IntVar(&o.Redis.Port, "cache.redis.port", o.Redis.Port, "Redis port.")
	fs.StringVar(&o.Redis.Password, "cache.redis.password", o.Redis.Password, "Redis password.")
	fs.IntVar(&o.Redis.Database, "cache.redis.database", o.Redis.Database, "Redis logical database.")
	fs.DurationVar(&o.Redis.DialTimeout, "cache.redis.dial-timeout", o.Redis.DialTimeout, "Redis dial timeout.")
	fs.DurationVar(&o.Redis.OpTimeout, "cache.redis.op-timeout", o.Redis.OpTimeout, "Redis read/write timeout.")
	fs.IntVar(&o.Memory.Size, "cache.memory.size", o.Memory.Size, "Entries kept by the in-process LRU cache.")
	fs.StringVar(&o.Bolt.Path, "cache.bolt.path", o.Bolt.Path, "BoltDB file for the persistent cache.")
}
