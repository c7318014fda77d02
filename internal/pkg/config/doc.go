// Package config provides the settings structs of the chat client.
//
// Settings are filled from command line flags, validated with struct tags and
// only then handed to the packages that build loggers, ciphers and connections.
package config
