package manifest

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/fermi-lat/tooldesc/log"
	"github.com/fermi-lat/tooldesc/tool"
	"github.com/fermi-lat/tooldesc/util"
)

type Tool struct {
	Name, Target, Package string
	Deps                  []string
}

type Source struct {
	Path, Revision string
	Dirty          bool
}

type Snapshot struct {
	ToolVersion string
	Source      Source
	Tools       []Tool
}

type ToolDiff struct {
	New, Old    Tool
	AddedDeps   []string
	RemovedDeps []string
	// Set when both versions list the same dependencies in a different order.
	Reordered bool
}

type DiffResult struct {
	Differ                   bool
	ToolVersion              string
	ModifiedTools            []ToolDiff
	AddedTools, RemovedTools []Tool
}

// Generate snapshots the descriptors in `catalog`. When `sourceDir` lies inside a git
// repository, the snapshot records the commit the descriptors were taken from.
func Generate(catalog *tool.Catalog, sourceDir string, allowUncommittedChanges bool) (Snapshot, error) {
	snapshot := Snapshot{
		ToolVersion: util.ToolVersion.String(),
		Tools: util.MappedSlice(catalog.Descriptors(), func(d tool.Descriptor) Tool {
			return Tool{
				Name:    d.Name,
				Target:  d.Target,
				Package: d.Package,
				Deps:    append([]string{}, d.Deps...),
			}
		}),
	}

	source, err := readSource(sourceDir)
	if err != nil {
		return snapshot, err
	}
	snapshot.Source = source

	if source.Dirty {
		message := fmt.Sprintf("Repository %q has uncommitted changes", source.Path)
		if !allowUncommittedChanges {
			return snapshot, fmt.Errorf("%s", message)
		}
		log.Warning("%s\n", message)
	}
	return snapshot, nil
}

func readSource(sourceDir string) (Source, error) {
	source := Source{Path: sourceDir}
	if sourceDir == "" {
		return source, nil
	}

	repo, err := git.PlainOpenWithOptions(sourceDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == git.ErrRepositoryNotExists {
		log.Debug("'%s' is not inside a git repository.\n", sourceDir)
		return source, nil
	}
	if err != nil {
		return source, fmt.Errorf("failed to open repository: %w", err)
	}

	log.Spinner.Start()
	defer log.Spinner.Stop()

	head, err := repo.Head()
	switch err {
	case nil:
		source.Revision = head.Hash().String()
	case plumbing.ErrReferenceNotFound:
		log.Debug("Repository has no commits yet.\n")
	default:
		return source, fmt.Errorf("failed to get repo HEAD: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return source, fmt.Errorf("failed to get repo worktree: %w", err)
	}
	source.Path = worktree.Filesystem.Root()

	status, err := worktree.Status()
	if err != nil {
		return source, fmt.Errorf("failed to get repo status: %w", err)
	}
	source.Dirty = !status.IsClean()
	log.Debug("Repo HEAD is '%s', dirty: %v.\n", source.Revision, source.Dirty)
	return source, nil
}

func diffTool(newTool, oldTool Tool) ToolDiff {
	result := ToolDiff{New: newTool, Old: oldTool}

	inOld := map[string]struct{}{}
	for _, dep := range oldTool.Deps {
		inOld[dep] = struct{}{}
	}
	inNew := map[string]struct{}{}
	for _, dep := range newTool.Deps {
		inNew[dep] = struct{}{}
		if _, found := inOld[dep]; !found {
			result.AddedDeps = append(result.AddedDeps, dep)
		}
	}
	for _, dep := range oldTool.Deps {
		if _, found := inNew[dep]; !found {
			result.RemovedDeps = append(result.RemovedDeps, dep)
		}
	}

	if len(result.AddedDeps) == 0 && len(result.RemovedDeps) == 0 && len(newTool.Deps) == len(oldTool.Deps) {
		for i := range newTool.Deps {
			if newTool.Deps[i] != oldTool.Deps[i] {
				result.Reordered = true
				break
			}
		}
	}
	return result
}

func sameTool(a, b Tool) bool {
	if a.Name != b.Name || a.Target != b.Target || a.Package != b.Package || len(a.Deps) != len(b.Deps) {
		return false
	}
	for i := range a.Deps {
		if a.Deps[i] != b.Deps[i] {
			return false
		}
	}
	return true
}

// checkVersion rejects snapshots that are malformed or written by a newer major version.
func checkVersion(snapshot Snapshot) (util.Version, error) {
	version, err := util.ParseVersion(snapshot.ToolVersion)
	if err != nil {
		return version, fmt.Errorf("snapshot has %w", err)
	}
	if version.Major > util.ToolVersion.Major {
		return version, fmt.Errorf("snapshot was written by tooldesc %s, which is newer than %s", version, util.ToolVersion)
	}
	return version, nil
}

func Diff(newSnapshot, oldSnapshot Snapshot) (DiffResult, error) {
	result := DiffResult{}

	newVersion, err := checkVersion(newSnapshot)
	if err != nil {
		return result, err
	}
	oldVersion, err := checkVersion(oldSnapshot)
	if err != nil {
		return result, err
	}

	if newVersion != oldVersion {
		result.Differ = true
		result.ToolVersion = fmt.Sprintf("tooldesc version changed from %s to %s", oldVersion, newVersion)
	}

	findToolByName := func(name string, tools []Tool) (Tool, bool) {
		for _, t := range tools {
			if t.Name == name {
				return t, true
			}
		}
		return Tool{}, false
	}

	// Iterate through the new tools to find added and changed ones.
	// A second pass through the old tools finds the removed ones.
	for _, t := range newSnapshot.Tools {
		if matchingOldTool, found := findToolByName(t.Name, oldSnapshot.Tools); found {
			if !sameTool(t, matchingOldTool) {
				result.Differ = true
				result.ModifiedTools = append(result.ModifiedTools, diffTool(t, matchingOldTool))
			}
		} else {
			result.Differ = true
			result.AddedTools = append(result.AddedTools, t)
		}
	}

	for _, t := range oldSnapshot.Tools {
		if _, found := findToolByName(t.Name, newSnapshot.Tools); !found {
			result.Differ = true
			result.RemovedTools = append(result.RemovedTools, t)
		}
	}

	return result, nil
}
