package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eringen/spacetraveling"
	"github.com/eringen/spacetraveling/logger"
)

// fileConfig mirrors config.yaml. Every key can be overridden from the
// environment as SPACETRAVELING_<SECTION>_<KEY>.
type fileConfig struct {
	Site struct {
		Name        string `mapstructure:"name"`
		URL         string `mapstructure:"url"`
		Description string `mapstructure:"description"`
		Author      string `mapstructure:"author"`
		Locale      string `mapstructure:"locale"`
	} `mapstructure:"site"`

	Server struct {
		Addr          string `mapstructure:"addr"`
		StaticDir     string `mapstructure:"static_dir"`
		LoadMoreLimit int    `mapstructure:"load_more_limit"`
	} `mapstructure:"server"`

	Prismic struct {
		Endpoint     string        `mapstructure:"endpoint"`
		AccessToken  string        `mapstructure:"access_token"`
		Ref          string        `mapstructure:"ref"`
		DocumentType string        `mapstructure:"document_type"`
		PageSize     int           `mapstructure:"page_size"`
		FeedPageSize int           `mapstructure:"feed_page_size"`
		Timeout      time.Duration `mapstructure:"timeout"`
	} `mapstructure:"prismic"`

	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	Log logConfig `mapstructure:"log"`
}

type logConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

func (l logConfig) logger() logger.Config {
	return logger.Config{
		Level:      l.Level,
		File:       l.File,
		MaxSize:    l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAge,
	}
}

func (c fileConfig) site() spacetraveling.SiteConfig {
	return spacetraveling.SiteConfig{
		Name:          c.Site.Name,
		URL:           c.Site.URL,
		Description:   c.Site.Description,
		Author:        c.Site.Author,
		Locale:        c.Site.Locale,
		Addr:          c.Server.Addr,
		Endpoint:      c.Prismic.Endpoint,
		AccessToken:   c.Prismic.AccessToken,
		Ref:           c.Prismic.Ref,
		DocumentType:  c.Prismic.DocumentType,
		PageSize:      c.Prismic.PageSize,
		FeedPageSize:  c.Prismic.FeedPageSize,
		FetchTimeout:  c.Prismic.Timeout,
		FeedCacheTTL:  c.Cache.TTL,
		LoadMoreLimit: c.Server.LoadMoreLimit,
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("site.name", "spacetraveling")
	v.SetDefault("site.url", "http://localhost:3000")
	v.SetDefault("site.description", "")
	v.SetDefault("site.author", "")
	v.SetDefault("site.locale", "pt-BR")

	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.load_more_limit", 30)

	v.SetDefault("prismic.endpoint", "")
	v.SetDefault("prismic.access_token", "")
	v.SetDefault("prismic.ref", "")
	v.SetDefault("prismic.document_type", "posts")
	v.SetDefault("prismic.page_size", 5)
	v.SetDefault("prismic.feed_page_size", 100)
	v.SetDefault("prismic.timeout", "10s")

	v.SetDefault("cache.ttl", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)

	v.SetEnvPrefix("SPACETRAVELING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads envFile (if present), then the YAML config file and the
// environment. An explicit config path must exist; the default one may not.
func loadConfig(path, envFile string) (fileConfig, error) {
	var out fileConfig

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return out, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return out, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("decode config: %w", err)
	}
	if out.Prismic.Endpoint == "" {
		return out, errors.New("prismic.endpoint is required (or set SPACETRAVELING_PRISMIC_ENDPOINT)")
	}
	return out, nil
}
