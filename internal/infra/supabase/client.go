package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"

	"ushay-etl/internal/domain"
)

// Client wraps the Supabase client used by the row sink.
type Client struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewClient creates a new Supabase client instance; call Initialize before use.
func NewClient(config domain.Config, logger domain.Logger) *Client {
	return &Client{
		config: config,
		logger: logger,
	}
}

// DB returns the underlying Supabase client.
func (s *Client) DB() *supabase.Client {
	return s.client
}

// Initialize establishes a connection to Supabase
func (s *Client) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// Insert adds rows to table through PostgREST.
func (s *Client) Insert(table string, rows interface{}) error {
	if s.client == nil {
		return fmt.Errorf("supabase client not initialized")
	}
	_, _, err := s.client.From(table).Insert(rows, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}
