package gitexplain

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/envdoctor/envdoctor/internal/detect"
	"github.com/envdoctor/envdoctor/internal/execguard"
	"github.com/envdoctor/envdoctor/internal/logger"
)

// Explanation is a matched condition plus details specific to this
// repository.
type Explanation struct {
	Condition
	Details string
}

// probeState collects everything the matchers need, gathered once up front.
// A probe that was blocked or failed leaves its field at the zero value and
// the corresponding conditions are treated as not verifiable.
type probeState struct {
	insideRepo   bool
	insideKnown  bool
	gitDir       string
	porcelain    []string // status --porcelain=v1 --branch lines
	statusKnown  bool
	userName     string
	userEmail    string
	configKnown  bool
	remotes      string
	remotesKnown bool
	stash        string
	stashKnown   bool
	depGap       detect.DependencyGap
	depGapFound  bool
}

// Explain inspects the directory's git state via read-only guarded queries,
// plus its build state (uninstalled dependencies for the detected
// ecosystem), and returns the first matching known condition. Conditions
// are evaluated in a fixed order; merge conflict outranks everything that
// can co-occur with it and the build condition ranks after every git one.
// Returns false when the directory looks healthy or nothing could be
// verified.
func Explain(ctx context.Context, exec *execguard.Executor, dir string) (*Explanation, bool) {
	conditions, err := loadConditions()
	if err != nil {
		logger.Debug("knowledge base unavailable", "error", err)
		return nil, false
	}

	state := gatherProbes(ctx, exec, dir)

	type matcher struct {
		id    string
		match func(*probeState) (string, bool)
	}
	// Fixed order; first match wins.
	matchers := []matcher{
		{"not-a-repo", matchNotARepo},
		{"merge-conflict", matchMergeConflict},
		{"rebase-in-progress", matchRebase},
		{"detached-head", matchDetachedHead},
		{"diverged", matchDiverged},
		{"untracked-overwrite", matchUntrackedOverwrite},
		{"behind-upstream", matchBehind},
		{"missing-identity", matchMissingIdentity},
		{"no-remote", matchNoRemote},
		{"uncommitted-changes", matchUncommitted},
		{"stash-entries", matchStash},
		{"missing-dependencies", matchMissingDeps},
	}

	for _, m := range matchers {
		details, ok := m.match(&state)
		if !ok {
			continue
		}
		cond, exists := conditions[m.id]
		if !exists {
			logger.Debug("matched condition missing from knowledge base", "id", m.id)
			continue
		}
		exp := &Explanation{Condition: cond, Details: details}
		if m.id == "missing-dependencies" {
			// The fix depends on which ecosystem has the gap, so it is not
			// a static knowledge-base entry.
			exp.Fixes = []string{state.depGap.Fix}
		}
		return exp, true
	}
	return nil, false
}

func gatherProbes(ctx context.Context, exec *execguard.Executor, dir string) probeState {
	var state probeState

	// The build-state probe is pure filesystem inspection and does not
	// depend on git being present.
	state.depGap, state.depGapFound = detect.FindDependencyGap(dir)

	// Without git none of the repository state is verifiable. Checking once up front also means a
	// later exit code 1 is a genuine git exit (config --get on an unset key
	// exits 1), not a missing binary.
	if !exec.ToolExists(ctx, "git") {
		return state
	}

	run := func(cmd string) (execguard.Result, bool) {
		result := exec.Run(ctx, execguard.Request{Command: cmd, Dir: dir})
		return result, !result.Blocked
	}

	if result, ok := run("git rev-parse --is-inside-work-tree"); ok {
		state.insideKnown = true
		state.insideRepo = result.Succeeded && strings.TrimSpace(result.Stdout) == "true"
	}
	if !state.insideRepo {
		return state
	}

	if result, ok := run("git rev-parse --git-dir"); ok && result.Succeeded {
		gitDir := strings.TrimSpace(result.Stdout)
		if !filepath.IsAbs(gitDir) {
			gitDir = filepath.Join(dir, gitDir)
		}
		state.gitDir = gitDir
	}

	if result, ok := run("git status --porcelain=v1 --branch"); ok && result.Succeeded {
		state.statusKnown = true
		for _, line := range strings.Split(result.Stdout, "\n") {
			if line != "" {
				state.porcelain = append(state.porcelain, line)
			}
		}
	}

	nameResult, nameOK := run("git config --get user.name")
	emailResult, emailOK := run("git config --get user.email")
	if nameOK && emailOK {
		state.configKnown = true
		state.userName = strings.TrimSpace(nameResult.Stdout)
		state.userEmail = strings.TrimSpace(emailResult.Stdout)
	}

	if result, ok := run("git remote"); ok && result.Succeeded {
		state.remotesKnown = true
		state.remotes = strings.TrimSpace(result.Stdout)
	}

	if result, ok := run("git stash list"); ok && result.Succeeded {
		state.stashKnown = true
		state.stash = strings.TrimSpace(result.Stdout)
	}

	return state
}

// conflictCodes are the porcelain XY codes that mark an unmerged path.
var conflictCodes = map[string]bool{
	"DD": true, "AU": true, "UD": true, "UA": true,
	"DU": true, "AA": true, "UU": true,
}

func matchNotARepo(s *probeState) (string, bool) {
	if !s.insideKnown {
		return "", false
	}
	return "", !s.insideRepo
}

func matchMergeConflict(s *probeState) (string, bool) {
	if !s.statusKnown {
		return "", false
	}
	var conflicted []string
	for _, line := range s.porcelain {
		if len(line) < 4 || strings.HasPrefix(line, "##") {
			continue
		}
		if conflictCodes[line[:2]] {
			conflicted = append(conflicted, strings.TrimSpace(line[3:]))
		}
	}
	if len(conflicted) == 0 {
		return "", false
	}
	return "conflicted files: " + strings.Join(conflicted, ", "), true
}

func matchRebase(s *probeState) (string, bool) {
	if s.gitDir == "" {
		return "", false
	}
	for _, marker := range []string{"rebase-merge", "rebase-apply"} {
		if info, err := os.Stat(filepath.Join(s.gitDir, marker)); err == nil && info.IsDir() {
			return "", true
		}
	}
	return "", false
}

func matchDetachedHead(s *probeState) (string, bool) {
	header, ok := branchHeader(s)
	if !ok {
		return "", false
	}
	return "", strings.Contains(header, "no branch")
}

// matchUntrackedOverwrite approximates "an update would be refused": the
// branch is behind its upstream while untracked files are present, so
// incoming commits may collide with them. Must rank ahead of the plain
// behind-upstream condition.
func matchUntrackedOverwrite(s *probeState) (string, bool) {
	header, ok := branchHeader(s)
	if !ok || !strings.Contains(header, "behind ") {
		return "", false
	}
	var untracked []string
	for _, line := range s.porcelain {
		if strings.HasPrefix(line, "?? ") {
			untracked = append(untracked, strings.TrimSpace(line[3:]))
		}
	}
	if len(untracked) == 0 {
		return "", false
	}
	return "untracked files: " + strings.Join(untracked, ", "), true
}

func matchDiverged(s *probeState) (string, bool) {
	header, ok := branchHeader(s)
	if !ok {
		return "", false
	}
	if strings.Contains(header, "ahead ") && strings.Contains(header, "behind ") {
		return header, true
	}
	return "", false
}

func matchBehind(s *probeState) (string, bool) {
	header, ok := branchHeader(s)
	if !ok {
		return "", false
	}
	if strings.Contains(header, "behind ") {
		return header, true
	}
	return "", false
}

func matchMissingIdentity(s *probeState) (string, bool) {
	if !s.configKnown {
		return "", false
	}
	switch {
	case s.userName == "" && s.userEmail == "":
		return "user.name and user.email are unset", true
	case s.userName == "":
		return "user.name is unset", true
	case s.userEmail == "":
		return "user.email is unset", true
	}
	return "", false
}

func matchNoRemote(s *probeState) (string, bool) {
	if !s.remotesKnown {
		return "", false
	}
	return "", s.remotes == ""
}

func matchUncommitted(s *probeState) (string, bool) {
	if !s.statusKnown {
		return "", false
	}
	changed := 0
	for _, line := range s.porcelain {
		if !strings.HasPrefix(line, "##") {
			changed++
		}
	}
	if changed == 0 {
		return "", false
	}
	return "", true
}

func matchStash(s *probeState) (string, bool) {
	if !s.stashKnown || s.stash == "" {
		return "", false
	}
	entries := len(strings.Split(s.stash, "\n"))
	if entries == 1 {
		return "1 stash entry", true
	}
	return strconv.Itoa(entries) + " stash entries", true
}

func matchMissingDeps(s *probeState) (string, bool) {
	if !s.depGapFound {
		return "", false
	}
	return s.depGap.Ecosystem + " dependencies are not installed (" + s.depGap.Marker + " missing)", true
}

// branchHeader returns the "## ..." line from porcelain branch output.
func branchHeader(s *probeState) (string, bool) {
	if !s.statusKnown {
		return "", false
	}
	for _, line := range s.porcelain {
		if strings.HasPrefix(line, "## ") {
			return line[3:], true
		}
	}
	return "", false
}
