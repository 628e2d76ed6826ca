package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/depotstat/cmd/depotstat/commands"
	"github.com/Sumatoshi-tech/depotstat/pkg/config"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
)

// Commands install the process-wide slog default, so these tests run
// sequentially.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "depotstat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o600))

	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--no-color", "--quiet"}, args...))

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func sceneJSON(name string, lines int, choice bool, speaker string) string {
	var items []string
	for range lines {
		items = append(items, `{"Speaker": "`+speaker+`"}`)
	}

	c := "false"
	if choice {
		c = "true"
	}

	return `{"SceneName": "` + name + `", "SectionsInScene": [{"IsChoiceSection": ` + c +
		`, "LinesInSection": [` + strings.Join(items, ",") + `]}]}`
}

// sceneTree builds base/quest with one main and one side quest plus a
// malformed file, and returns the quest directory.
func sceneTree(t *testing.T) string {
	t.Helper()

	quest := filepath.Join(t.TempDir(), "base", "quest")
	writeFile(t, filepath.Join(quest, "main_quests", "part1", "q105", "scenes", "a.scnlocjson"), sceneJSON("a", 5, true, "Judy"))
	writeFile(t, filepath.Join(quest, "side_quests", "sq027", "scenes", "b.scnlocjson"), sceneJSON("b", 12, false, "Judy"))
	writeFile(t, filepath.Join(quest, "side_quests", "sq027", "scenes", "broken.scnlocjson"), "{")

	return quest
}

type sceneOutput struct {
	GroupBy   string `json:"group_by"`
	Threshold int    `json:"threshold"`
	Summary   struct {
		Scenes   int `json:"scenes"`
		Lines    int `json:"lines"`
		Failures int `json:"failures"`
	} `json:"summary"`
	Groups []struct {
		Group string `json:"group"`
	} `json:"groups"`
	FrequentSpeakers []struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	} `json:"frequent_speakers"`
	Missing []string `json:"missing"`
}

func TestScenes_Text(t *testing.T) {
	out, err := execute(t, "scenes", sceneTree(t))
	require.NoError(t, err)

	assert.Contains(t, out, "SCENE STATISTICS")
	assert.Contains(t, out, "main_quests/part1/q105")
	assert.Contains(t, out, "side_quests/sq027")
	assert.Contains(t, out, "broken.scnlocjson")
}

func TestScenes_JSON(t *testing.T) {
	out, err := execute(t, "scenes", sceneTree(t), "--format", "json")
	require.NoError(t, err)

	var got sceneOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "category", got.GroupBy)
	assert.Equal(t, 2, got.Summary.Scenes)
	assert.Equal(t, 17, got.Summary.Lines)
	assert.Equal(t, 1, got.Summary.Failures)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "side_quests/sq027", got.Groups[0].Group)
}

func TestScenes_SnapshotRoundTrip(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "scan.json.lz4")

	_, err := execute(t, "scenes", sceneTree(t), "--save", snap)
	require.NoError(t, err)
	require.FileExists(t, snap)

	out, err := execute(t, "scenes", "--input", snap, "--group-by", "type", "--format", "json")
	require.NoError(t, err)

	var got sceneOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "type", got.GroupBy)
	assert.Equal(t, 17, got.Summary.Lines)
	assert.Equal(t, 1, got.Summary.Failures)
	assert.Equal(t, 10, got.Threshold)
	assert.Empty(t, got.FrequentSpeakers)

	out, err = execute(t, "scenes", "--input", snap, "--threshold", "2", "--format", "json")
	require.NoError(t, err)

	got = sceneOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 2, got.Threshold)
	require.Len(t, got.FrequentSpeakers, 1)
	assert.Equal(t, "Judy", got.FrequentSpeakers[0].Label)
	assert.Equal(t, 2, got.FrequentSpeakers[0].Count)
}

func TestScenes_FileFormats(t *testing.T) {
	root := sceneTree(t)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "scenes.xlsx")
	_, err := execute(t, "scenes", root, "--format", "xlsx", "-o", xlsx)
	require.NoError(t, err)

	wb, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)

	assert.Contains(t, wb.GetSheetList(), "groups")
	require.NoError(t, wb.Close())

	csvDir := filepath.Join(dir, "csv")
	_, err = execute(t, "scenes", root, "--format", "csv", "-o", csvDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(csvDir, "scenes_groups.csv"))
	assert.FileExists(t, filepath.Join(csvDir, "scenes_failures.csv"))

	html := filepath.Join(dir, "scenes.html")
	_, err = execute(t, "scenes", root, "--format", "plot", "-o", html)
	require.NoError(t, err)

	page, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(page), "echarts")
}

func TestScenes_Errors(t *testing.T) {
	_, err := execute(t, "scenes")
	require.ErrorIs(t, err, commands.ErrNoScanRoots)

	_, err = execute(t, "scenes", sceneTree(t), "--input", "scan.json")
	require.ErrorIs(t, err, commands.ErrInputAndRoots)

	_, err = execute(t, "scenes", sceneTree(t), "--format", "pdf")
	require.ErrorIs(t, err, report.ErrUnknownFormat)

	_, err = execute(t, "scenes", sceneTree(t), "--group-by", "planet")
	require.ErrorIs(t, err, scene.ErrUnknownGroupBy)
}

func TestMissingInputs(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := execute(t, "scenes", missing, "--format", "json")
	require.NoError(t, err)

	var scenes sceneOutput
	require.NoError(t, json.Unmarshal([]byte(out), &scenes))
	assert.Equal(t, 0, scenes.Summary.Scenes)
	assert.Equal(t, []string{missing}, scenes.Missing)

	out, err = execute(t, "scenes", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "Missing scan roots")

	var withMissing struct {
		Missing []string `json:"missing"`
	}

	for _, args := range [][]string{
		{"quests", missing + ".json"},
		{"anims", missing},
		{"folders", missing},
		{"assets", missing},
	} {
		t.Run(args[0], func(t *testing.T) {
			out, err := execute(t, append(args, "--format", "json")...)
			require.NoError(t, err)

			withMissing.Missing = nil
			require.NoError(t, json.Unmarshal([]byte(out), &withMissing))
			assert.NotEmpty(t, withMissing.Missing)

			out, err = execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Missing")
		})
	}
}

func TestQuests(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "nodes.json")
	writeFile(t, dump, `{"questphases": {
		"base\\quest\\main_quests\\part1\\q105\\a.questphase": [
			{"id": 1, "name": "Hub", "class": "questHubNodeDefinition", "path": "p/1"},
			{"id": 2, "name": "Hub", "class": "questHubNodeDefinition", "path": "p/2"}
		],
		"base\\open_world\\x.questphase": [{"id": 3, "name": "Other", "class": "mystery"}]
	}}`)

	out, err := execute(t, "quests", dump, filepath.Join(dir, "missing.json"), "--threshold", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "QUEST NODE STATISTICS")
	assert.Contains(t, out, "Hub | Hub")
	assert.Contains(t, out, "mystery")

	out, err = execute(t, "quests", dump, "--threshold", "2", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Summary struct {
			Phases        int `json:"phases"`
			TargetPhases  int `json:"target_phases"`
			HighFrequency int `json:"high_frequency"`
		} `json:"summary"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 2, got.Summary.Phases)
	assert.Equal(t, 1, got.Summary.TargetPhases)
	assert.Equal(t, 1, got.Summary.HighFrequency)
	assert.Empty(t, got.Missing)
}

// questTree builds a quest root with two main and one side quest folder.
func questTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main_quests", "part1", "q001", "a.questphase"), "")
	writeFile(t, filepath.Join(root, "main_quests", "part1", "q001", "scenes", "a.scene"), "")
	writeFile(t, filepath.Join(root, "main_quests", "part1", "q002", "b.scenesolution"), "")
	writeFile(t, filepath.Join(root, "side_quests", "sq001", "c.questphase"), "")
	writeFile(t, filepath.Join(root, "side_quests", "sq001", "c.ent"), "")
	writeFile(t, filepath.Join(root, "side_quests", "notes", "ignored.questphase"), "")

	return root
}

func TestFolders(t *testing.T) {
	out, err := execute(t, "folders", questTree(t), "--format", "json")
	require.NoError(t, err)

	var got struct {
		Quests []json.RawMessage `json:"quests"`
		Totals map[string]int    `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Len(t, got.Quests, 3)
	assert.Equal(t, map[string]int{".questphase": 2, ".scenesolution": 1}, got.Totals)
}

func TestAssets(t *testing.T) {
	out, err := execute(t, "assets", questTree(t), "--top", "1", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Total   int `json:"total"`
		Ranking []struct {
			Total int `json:"total"`
		} `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 5, got.Total)
	require.Len(t, got.Ranking, 1)
	assert.Equal(t, 2, got.Ranking[0].Total)

	out, err = execute(t, "assets", questTree(t))
	require.NoError(t, err)
	assert.Contains(t, out, "ASSET INVENTORY")
}

func TestAnims(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sit", "chair_sit_idle.anims"), "x")
	writeFile(t, filepath.Join(root, "stand", "generic_stand.anims"), "xy")
	writeFile(t, filepath.Join(root, "stand", "readme.txt"), "")

	out, err := execute(t, "anims", root, "--format", "json")
	require.NoError(t, err)

	var got struct {
		Animations      []json.RawMessage `json:"animations"`
		Classifications []struct {
			Category string            `json:"category"`
			Files    []json.RawMessage `json:"files"`
		} `json:"classifications"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Len(t, got.Animations, 2)

	counts := map[string]int{}
	for _, c := range got.Classifications {
		counts[c.Category] = len(c.Files)
	}

	assert.Equal(t, 1, counts["Sit"])
	assert.Equal(t, 1, counts["Stand"])
	assert.Equal(t, 1, counts["Idle"])
	assert.Equal(t, 0, counts["Dirt"])
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta")

	merged := filepath.Join(dir, "all.txt")

	_, err := execute(t, "merge", dir, "-o", merged)
	require.NoError(t, err)

	data, err := os.ReadFile(merged)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "===== merged text files =====")
	assert.Contains(t, text, "alpha")
	assert.Contains(t, text, "beta")
	assert.NotContains(t, text, "all.txt\n")

	out, err := execute(t, "merge", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "a.scnlocjson")
	writeFile(t, valid, sceneJSON("a", 1, false, "Judy"))

	out, err := execute(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid scene document")

	invalid := filepath.Join(dir, "bad.json")
	writeFile(t, invalid, `{"questphases": {"p": "nodes"}}`)

	out, err = execute(t, "validate", invalid)
	require.ErrorIs(t, err, commands.ErrValidationFailed)
	assert.Equal(t, 2, commands.ExitCode(err))
	assert.Contains(t, out, "is not a valid questnode document")

	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, "{")

	_, err = execute(t, "validate", broken)
	assert.Equal(t, 2, commands.ExitCode(err))

	_, err = execute(t, "validate", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, 1, commands.ExitCode(err))

	out, err = execute(t, "validate", valid, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)

	_, err = execute(t, "validate", valid, "--format", "csv")
	require.ErrorIs(t, err, commands.ErrFormatUnsupported)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "depotstat "))
}

func TestMetricsFile(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "depotstat.prom")

	_, err := execute(t, "--metrics-file", metrics, "scenes", sceneTree(t))
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "depotstat_files_scanned")
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, cfgPath, "quests:\n  threshold: 0\n")

	cmd := commands.NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "quests", "x.json"})

	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrInvalidThreshold)
	assert.Equal(t, 1, commands.ExitCode(err))
}
