package main

// Version is stamped by the release workflow via -ldflags.
var Version = "dev"
