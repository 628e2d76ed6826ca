package config

import (
	"github.com/Sumatoshi-tech/depotstat/pkg/inventory"
	"github.com/Sumatoshi-tech/depotstat/pkg/questnode"
	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
	"github.com/Sumatoshi-tech/depotstat/pkg/tally"
)

// Scene defaults.
const (
	DefaultScenesSuffix    = scene.DefaultSuffix
	DefaultScenesTop       = 10
	DefaultScenesGroupBy   = string(scene.GroupByCategory)
	DefaultScenesThreshold = tally.DefaultThreshold
)

// Quest-node defaults.
const (
	DefaultQuestsThreshold = tally.DefaultThreshold
	DefaultQuestsSeparator = questnode.DefaultSeparator
)

// Inventory defaults.
const (
	DefaultAssetsTop   = inventory.DefaultTop
	DefaultAnimsSuffix = inventory.DefaultAnimSuffix
)

// Logging and output defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultTheme     = "dark"
	DefaultMaxRows   = 0
)
