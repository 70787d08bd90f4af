package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImports_Qualify(t *testing.T) {
	im := NewImports("example.com/game/views")

	assert.Equal(t, "int", im.Qualify("", "", "int"))
	assert.Equal(t, "Item", im.Qualify("example.com/game/views", "views", "Item"))
	assert.Equal(t, "model.Item", im.Qualify("example.com/game/model", "model", "Item"))
	assert.Equal(t, "model2.Item", im.Qualify("example.com/other/model", "model", "Item"))
	assert.Equal(t, "model.Other", im.Qualify("example.com/game/model", "model", "Other"))
	assert.Equal(t, "toml.Key", im.Qualify("github.com/pelletier/go-toml/v2", "", "Key"))
	assert.Equal(t, "yaml.Node", im.Qualify("gopkg.in/yaml.v3", "", "Node"))

	specs := im.Specs()
	assert.Equal(t, []ImportSpec{
		{Alias: "model", Path: "example.com/game/model"},
		{Alias: "model2", Path: "example.com/other/model"},
		{Alias: "toml", Path: "github.com/pelletier/go-toml/v2"},
		{Alias: "yaml", Path: "gopkg.in/yaml.v3"},
	}, specs)

	assert.Equal(t, `"example.com/game/model"`, specs[0].String())
	assert.Equal(t, `model2 "example.com/other/model"`, specs[1].String())
	assert.Equal(t, `toml "github.com/pelletier/go-toml/v2"`, specs[2].String())
	assert.Equal(t, `yaml "gopkg.in/yaml.v3"`, specs[3].String())
}

func TestSanitizeAlias(t *testing.T) {
	assert.Equal(t, "toml", sanitizeAlias("go-toml"))
	assert.Equal(t, "yaml", sanitizeAlias("yaml.v3"))
	assert.Equal(t, "view_generator", sanitizeAlias("view_generator"))
	assert.Equal(t, "pkg3d", sanitizeAlias("3d"))
}
