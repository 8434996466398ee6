package shader

import (
	"fmt"

	"github.com/richinsley/glsteps/glsl"
	xlate "github.com/richinsley/glsteps/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// Translate makes src compilable by a desktop GL 4.1 core context. Sources
// declaring "#version 300 es" are treated as WebGL2 shaders and translated to
// GLSL 4.10; everything else is returned unchanged.
func Translate(src string, stage glsl.Stage) (string, error) {
	v, ok := glsl.ParseVersion(src)
	if !ok || !v.IsES() {
		return src, nil
	}

	t, err := xlate.GetTranslator()
	if err != nil {
		return "", err
	}
	out, err := t.TranslateShader(src, stage.TranslatorName(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", fmt.Errorf("%s shader translation failed: %w", stage.TranslatorName(), err)
	}
	return out.Code, nil
}
