// Package constants defines common constants used across nvmd
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// CPU architectures
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	Arch386   = "386"
	ArchARM   = "arm"
)

// Shell types
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// User responses
const (
	ResponseYes = "yes"
	ResponseY   = "y"
	ResponseNo  = "no"
	ResponseN   = "n"
)

// File extensions
const (
	ExtExe = ".exe"
	ExtCmd = ".cmd"
)

// Tool names recognized by the dispatcher
const (
	ToolNvmd     = "nvmd"
	ToolNode     = "node"
	ToolNpm      = "npm"
	ToolNpx      = "npx"
	ToolCorepack = "corepack"
)

// CoreTools are the names always shimmed into the bin directory
var CoreTools = []string{ToolNode, ToolNpm, ToolNpx, ToolCorepack}

// Environment variables
const (
	EnvHome  = "NVMD_HOME"
	EnvDebug = "NVMD_DEBUG"
	EnvPath  = "PATH"
)

// VersionFileName is the per-directory version override file
const VersionFileName = ".nvmdrc"

// ExitInterrupted is the conventional exit code after an unhandled SIGINT
const ExitInterrupted = 130
