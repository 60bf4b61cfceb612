package matrix

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ddsmatrix/internal/config"
	"ddsmatrix/internal/naming"
)

// PlannedBuild is one image build of a run.
type PlannedBuild struct {
	Image config.BaseImage
	Tag   string
}

// PlannedPair is one pair test of a run with its derived names.
type PlannedPair struct {
	Pair
	Project     string
	TalkerTag   string
	ListenerTag string
}

// Plan lists what a run of cfg would do, in execution order.
type Plan struct {
	Builds []PlannedBuild
	Pairs  []PlannedPair
}

// NewPlan derives the plan of cfg without touching the orchestrator.
func NewPlan(cfg config.MatrixConfig) Plan {
	var plan Plan
	for _, img := range cfg.BaseImages {
		plan.Builds = append(plan.Builds, PlannedBuild{
			Image: img,
			Tag:   naming.ImageTag(cfg.Distro, cfg.Transport, img.Label),
		})
	}
	for _, p := range Pairs(cfg.BaseImages) {
		plan.Pairs = append(plan.Pairs, PlannedPair{
			Pair:        p,
			Project:     naming.ProjectName(cfg.ProjectPrefix, p.Talker.Label, p.Listener.Label),
			TalkerTag:   naming.ImageTag(cfg.Distro, cfg.Transport, p.Talker.Label),
			ListenerTag: naming.ImageTag(cfg.Distro, cfg.Transport, p.Listener.Label),
		})
	}
	return plan
}

// Render formats the plan as two tables.
func (p Plan) Render() string {
	var b strings.Builder

	builds := table.NewWriter()
	builds.SetTitle("Builds")
	builds.AppendHeader(table.Row{"#", "Label", "Base image", "Tag"})
	builds.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
	})
	for i, build := range p.Builds {
		builds.AppendRow(table.Row{i + 1, build.Image.Label, build.Image.Image, build.Tag})
	}
	builds.SetStyle(table.StyleLight)
	b.WriteString(builds.Render())
	b.WriteString("\n\n")

	pairs := table.NewWriter()
	pairs.SetTitle("Pairs")
	pairs.AppendHeader(table.Row{"#", "Talker", "Listener", "Project", "Talker image", "Listener image"})
	pairs.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
	})
	for i, pair := range p.Pairs {
		pairs.AppendRow(table.Row{i + 1, pair.Talker.Label, pair.Listener.Label, pair.Project, pair.TalkerTag, pair.ListenerTag})
	}
	pairs.SetStyle(table.StyleLight)
	b.WriteString(pairs.Render())
	b.WriteString("\n")

	return b.String()
}
