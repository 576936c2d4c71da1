package tool

// Version is overridden at build time with -ldflags "-X github.com/xufanglin/rimmich/tool.Version=...".
var Version = "0.1.0-dev"
