package shader

import "embed"

// Assets holds the built-in WGSL programs, addressed by file name without extension.
//
//go:embed assets/*.wgsl
var Assets embed.FS

// assetsRoot is the directory inside Assets the programs live in.
const assetsRoot = "assets"
