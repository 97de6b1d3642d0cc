package web

import "embed"

// StaticFS holds the embedded landing page and banner image.
//
//go:embed static/*
var StaticFS embed.FS
