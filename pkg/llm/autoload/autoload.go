// Package autoload registers every built-in decision provider factory via
// side-effect imports. Blank-import it from main to make all providers
// available to llm.NewFromConfig.
package autoload

import (
	_ "axle/pkg/llm/gemini"
	_ "axle/pkg/llm/ollama"
	_ "axle/pkg/llm/openailm"
)
