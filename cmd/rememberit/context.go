package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"rememberit"
	"rememberit/internal/config"
)

type commandContext struct {
	configFlag string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	clientOnce sync.Once
	client     *rememberit.Client
	clientErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureClient() (*rememberit.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		c.client, c.clientErr = rememberit.New(rememberit.WithConfig(cfg))
	})
	return c.client, c.clientErr
}

func (c *commandContext) close() {
	if c.client != nil {
		_ = c.client.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
