// Package config loads host configuration from YAML or TOML files.
//
// Example ddcci.yaml:
//
//	bus:
//	  device: /dev/i2c-4
//	  force_address: false
//	delays:
//	  response: 40ms
//	  save: 200ms
//	log:
//	  level: debug
//	  format: console
//	metrics:
//	  enabled: true
//
// With metrics.enabled set, Config.Options attaches a metrics.Metrics
// observer registered with the given prometheus.Registerer.
//
// The same keys are accepted in TOML. Durations use time.ParseDuration syntax.
package config
