// Package domain contains the core entities shared across the application:
// essays, publish results and uploaded images. These types represent business
// concepts and are intentionally free of transport or storage concerns.
package domain
