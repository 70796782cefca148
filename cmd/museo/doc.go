// Package main hosts the museo CLI entrypoint and command graph.
//
// The Cobra-based command tree signs in against the generation backend,
// lists presets, submits generations and manages projects. It centralizes
// configuration resolution, logger setup and token storage so subcommands
// only build a request and render the response.
package main
