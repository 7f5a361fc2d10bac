package service

import (
	"context"
	"testing"

	"dpofinder/domain"
	"dpofinder/utils"

	"gotest.tools/v3/assert"
)

func newTestResolver(t *testing.T) ResolverServiceImpl {
	t.Helper()
	utils.Cfg.Server.ResolveTimeoutSec = 5
	engine := newTestEngine(t)
	return ResolverServiceImpl{Directory: engine.Directory, Engine: engine}
}

func TestResolveAddress(t *testing.T) {
	resolver := newTestResolver(t)
	ctx := context.Background()

	resolution := resolver.ResolveAddress(ctx, "Indiranagar, Bangalore")
	assert.Equal(t, resolution.Status, domain.StatusSuccessLocality)
	assert.Equal(t, resolution.PINCode, "560038")

	resolution = resolver.ResolveAddress(ctx, "")
	assert.Equal(t, resolution.Status, domain.StatusNotFound)
}

func TestValidatePINService(t *testing.T) {
	resolver := newTestResolver(t)

	resolution := resolver.ValidatePIN(context.Background(), "Indiranagar Bangalore 560001")
	assert.Equal(t, resolution.Status, domain.StatusPINMismatch)
	assert.Equal(t, resolution.InputPIN, "560001")
}

func TestSuggest(t *testing.T) {
	resolver := newTestResolver(t)
	ctx := context.Background()

	suggestions := resolver.Suggest(ctx, "indiranagar", 5)
	assert.Equal(t, len(suggestions), 1)
	assert.Equal(t, suggestions[0].PINCode, "560038")

	assert.Equal(t, len(resolver.Suggest(ctx, "", 5)), 0)
}

func TestOfficesByPIN(t *testing.T) {
	resolver := newTestResolver(t)

	offices := resolver.OfficesByPIN("110001")
	assert.Equal(t, len(offices), 2)
	assert.Equal(t, len(resolver.OfficesByPIN("999999")), 0)
}
