package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"ahmet-ozay-website/providers"
)

type fakePinger struct {
	results []providers.Result
	got     string
}

func (f *fakePinger) Ping(_ context.Context, sitemapURL string) []providers.Result {
	f.got = sitemapURL
	return f.results
}

func TestSitemapSubmit(t *testing.T) {
	pinger := &fakePinger{results: []providers.Result{
		{Endpoint: "google", Success: false, Note: "ping endpoint deprecated"},
		{Endpoint: "bing", Success: true, Status: 200},
	}}
	svc := NewSitemapService(pinger, testBaseURL, zap.NewNop())

	report := svc.Submit(context.Background(), "manual")
	assert.True(t, report.Success)
	assert.Equal(t, testBaseURL+"/sitemap.xml", pinger.got)
	assert.Equal(t, testBaseURL+"/sitemap.xml", report.SitemapURL)
	assert.Len(t, report.Results, 2)
	assert.False(t, report.Timestamp.IsZero())
}

func TestSitemapSubmitAllFailed(t *testing.T) {
	pinger := &fakePinger{results: []providers.Result{{Endpoint: "bing", Error: "timeout"}}}
	report := NewSitemapService(pinger, testBaseURL, zap.NewNop()).Submit(context.Background(), "cron")
	assert.False(t, report.Success)
}
