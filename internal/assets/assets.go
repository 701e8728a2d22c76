// Package assets embeds the default shaders and texture so the demo runs
// from any working directory.
package assets

import _ "embed"

//go:embed shaders/vertex.glsl
var VertexShader string

//go:embed shaders/fragment.glsl
var FragmentShader string

//go:embed container.png
var ContainerPNG []byte

// ContainerName identifies the embedded texture in log messages.
const ContainerName = "embedded:container.png"
