// Package logging builds zerolog loggers and adapts them to ddc.Logger.
package logging
