// Package rest implements the service.Service interface against the
// TaskMaster REST API.
package rest

import (
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
)

// Client implements service.Service over the TaskMaster REST API.
type Client struct {
	api *api.Client
}

// New creates a REST client for the API configured in cfg. token may be nil
// for unauthenticated operations.
func New(cfg *config.Config, token *oauth2.Token, log hclog.Logger) *Client {
	return &Client{api: api.New(cfg.APIURL, token, log)}
}
