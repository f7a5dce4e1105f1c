package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuncName(t *testing.T) {
	assert.Equal(t, "InitializeConfig", FuncName("Initialize", "Config"))
	assert.Equal(t, "initializeConfig", FuncName("Initialize", "config"))
	assert.Equal(t, "WriteHTTPServer", FuncName("Write", "HTTPServer"))
	assert.Equal(t, "globalAppState", FuncName("Global", "appState"))
	assert.Equal(t, "MustConfig", FuncName("must", "Config"))
}

func TestHelperName(t *testing.T) {
	assert.Equal(t, "configSingleton", HelperName("Config", "Singleton"))
	assert.Equal(t, "appConfigUnguarded", HelperName("AppConfig", "Unguarded"))
	assert.Equal(t, "appConfigSingleton", HelperName("appConfig", "Singleton"))
}

func TestFirstRune(t *testing.T) {
	assert.Equal(t, "Ärger", UpperFirst("ärger"))
	assert.Equal(t, "", LowerFirst(""))
}
