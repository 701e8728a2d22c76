package assets

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestShadersDeclareQuadInterface(t *testing.T) {
	for _, want := range []string{"#version 330 core", "location = 0", "location = 1", "uniform mat4 transform"} {
		if !strings.Contains(VertexShader, want) {
			t.Errorf("vertex shader missing %q", want)
		}
	}
	if !strings.Contains(FragmentShader, "uniform sampler2D texture1") {
		t.Error("fragment shader missing texture1 sampler")
	}
}

func TestContainerDecodes(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(ContainerPNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("size = %v, want 128x128", b)
	}
}
