package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthReport(t *testing.T) {
	assert.Equal(t, HealthOK, HealthReport{}.Worst())
	assert.Empty(t, HealthReport{}.Failed())

	report := HealthReport{Checks: []HealthCheck{
		{Name: "Config file", Status: HealthOK},
		{Name: "Provider", Status: HealthError},
		{Name: "Name cache", Status: HealthWarn},
		{Name: "Usage store", Status: HealthError},
	}}
	assert.Equal(t, HealthError, report.Worst())
	assert.Equal(t, []string{"Provider", "Usage store"}, report.Failed())

	warnOnly := HealthReport{Checks: []HealthCheck{{Status: HealthOK}, {Status: HealthWarn}}}
	assert.Equal(t, HealthWarn, warnOnly.Worst())
}
