// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	MaxBodyLength int // Maximum accepted message length in bytes
	MaxPageSize   int // Upper bound for the optional message page size
}

func (c *Config) Validate() error {
	if c.MaxBodyLength <= 0 {
		return fmt.Errorf("max_body_length must be positive")
	}
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxBodyLength: 10000,
		MaxPageSize:   1000,
	}
}
