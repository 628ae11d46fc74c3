package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/driftline/veldt/pkg/shading"
	"github.com/driftline/veldt/pkg/terrain"
)

var profiles = []terrain.Profile{terrain.ProfileMountains, terrain.ProfileDuneBasin}

var debugViews = []shading.DebugView{shading.DebugOff, shading.DebugNormals, shading.DebugTiles}

// renderParamsPanel draws the terrain parameter editor. Terrain fields only
// take effect on Rebake; shading and sun fields apply immediately.
func (app *App) renderParamsPanel() {
	if imgui.ButtonV("Rebake", imgui.NewVec2(-80, 0)) {
		app.rebake()
	}
	imgui.SameLine()
	if imgui.ButtonV("Reset", imgui.NewVec2(-1, 0)) {
		app.resetParams()
		app.rebake()
	}

	imgui.Separator()

	imgui.InputInt("Seed", &app.seed)

	if imgui.BeginCombo("Profile", terrain.Profile(app.profile).String()) {
		for _, p := range profiles {
			if imgui.SelectableBoolV(p.String(), int32(p) == app.profile, 0, imgui.NewVec2(0, 0)) {
				app.profile = int32(p)
			}
		}
		imgui.EndCombo()
	}

	imgui.SliderIntV("Grid size", &app.gridSize, 1, 16, "%d tiles", imgui.SliderFlagsNone)
	imgui.SliderIntV("Tile size", &app.tileSize, 16, 256, "%d verts", imgui.SliderFlagsNone)

	if imgui.TreeNodeExStrV("Fractal", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SliderIntV("Octaves", &app.octaves, 1, 8, "%d", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Frequency", &app.frequency, 0.0005, 0.05, "%.4f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Lacunarity", &app.lacunarity, 1.0, 4.0, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Persistence", &app.persistence, 0.0, 1.0, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Mountain height", &app.mountainHeight, 1, 200, "%.0f", imgui.SliderFlagsNone)
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Dune basin", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SliderFloatV("Dune height", &app.duneHeight, 0, 100, "%.0f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Center X", &app.biomeCenterX, 0, 4080, "%.0f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Center Z", &app.biomeCenterZ, 0, 4080, "%.0f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Radius", &app.biomeRadius, 10, 2000, "%.0f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Falloff", &app.biomeFalloff, 1, 1000, "%.0f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Dune frequency", &app.duneFrequency, 0.001, 0.5, "%.3f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Dune sharpness", &app.duneSharpness, 1, 32, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Warp frequency", &app.warpFrequency, 0.0001, 0.1, "%.4f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Warp strength", &app.warpStrength, 0, 100, "%.1f", imgui.SliderFlagsNone)
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Normals", imgui.TreeNodeFlagsNone) {
		imgui.SliderFloatV("Mountain eps", &app.mountainEps, 0.01, 8, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Dune eps", &app.duneEps, 0.01, 8, "%.2f", imgui.SliderFlagsNone)
		imgui.TreePop()
	}

	imgui.Separator()

	if imgui.TreeNodeExStrV("Shading", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SliderFloatV("UV scale", &app.scene.Shading.UVScale, 0.01, 1.0, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Slope threshold", &app.scene.Shading.SlopeThreshold, 0.0, 1.0, "%.2f", imgui.SliderFlagsNone)
		imgui.Checkbox("Normal mapping", &app.scene.Shading.NormalMapping)

		if imgui.BeginCombo("Debug view", app.scene.DebugView.String()) {
			for _, v := range debugViews {
				if imgui.SelectableBoolV(v.String(), v == app.scene.DebugView, 0, imgui.NewVec2(0, 0)) {
					app.scene.DebugView = v
				}
			}
			imgui.EndCombo()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Sun", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SliderFloatV("Longitude", &app.scene.Sun.Longitude, 0, 360, "%.0f deg", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Latitude", &app.scene.Sun.Latitude, 0, 90, "%.0f deg", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Ambient", &app.scene.Sun.Ambient, 0, 1, "%.2f", imgui.SliderFlagsNone)
		imgui.TreePop()
	}

	imgui.Separator()
	app.renderProbeReadout()
}

// renderProbeReadout shows the terrain sample under the last viewport click.
func (app *App) renderProbeReadout() {
	imgui.Text("Probe")
	if !app.probeHit {
		imgui.TextDisabled("Click the terrain to sample it")
		return
	}

	imgui.Text(fmt.Sprintf("Point:  (%.1f, %.1f, %.1f)",
		app.probePoint.X, app.probePoint.Y, app.probePoint.Z))
	imgui.Text(fmt.Sprintf("Normal: (%.2f, %.2f, %.2f)",
		app.probeNormal.X, app.probeNormal.Y, app.probeNormal.Z))
	imgui.Text(fmt.Sprintf("Biome:  mountain %.2f | dune %.2f",
		app.probeWeights.Mountain, app.probeWeights.Dune))
}
