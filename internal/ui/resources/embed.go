package resources

import "embed"

//go:embed static/*
var staticFS embed.FS
