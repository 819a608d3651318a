package tools

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ChamsBouzaiene/campus/internal/catalog"
	"github.com/ChamsBouzaiene/campus/internal/engine"
	"github.com/ChamsBouzaiene/campus/internal/summary"
)

// Set selects which tools a registry exposes.
type Set struct {
	Recommend bool
	Schedule  bool
	Summarize bool
}

// Deps are the collaborators the tools read from.
type Deps struct {
	Catalog    catalog.Source
	Summarizer summary.Summarizer
	Logger     *zap.Logger
}

// NewToolRegistry builds an engine.ToolRegistry with the tools in set.
func NewToolRegistry(deps Deps, set Set) (engine.ToolRegistry, error) {
	reg := make(engine.ToolRegistry)

	if set.Recommend || set.Schedule {
		if deps.Catalog == nil {
			return nil, fmt.Errorf("catalog tools requested without a catalog source")
		}
	}
	if set.Recommend {
		reg[RecommendCoursesName] = NewRecommendCoursesTool(deps.Catalog)
	}
	if set.Schedule {
		reg[LookupScheduleName] = NewLookupScheduleTool(deps.Catalog)
	}

	if set.Summarize {
		if deps.Summarizer == nil {
			return nil, fmt.Errorf("%s requested without a summarizer", SummarizeTextName)
		}
		reg[SummarizeTextName] = NewSummarizeTextTool(deps.Summarizer, deps.Logger)
	}

	return reg, nil
}
