// Package model holds the plain data types shared by the repository,
// service and handler layers.
package model
