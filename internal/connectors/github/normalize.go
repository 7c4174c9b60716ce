package github

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// maxCommitDetails bounds how many commit messages a push event shows.
const maxCommitDetails = 5

// excerptLen bounds comment excerpts in event details.
const excerptLen = 140

// normalizeAll maps merged raw events into the display shape.
func normalizeAll(events []*gh.Event) []domain.NormalizedEvent {
	out := make([]domain.NormalizedEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, Normalize(ev))
	}
	return out
}

// Normalize maps one raw event through its per-category formatter.
// Unknown categories fall back to echoing the raw type name.
func Normalize(ev *gh.Event) domain.NormalizedEvent {
	out := domain.NormalizedEvent{
		ID:        ev.GetID(),
		CreatedAt: ev.GetCreatedAt().Time,
	}

	if actor := ev.GetActor(); actor != nil {
		out.Actor = domain.Actor{
			Login:     actor.GetLogin(),
			AvatarURL: actor.GetAvatarURL(),
		}
		if login := actor.GetLogin(); login != "" {
			out.Actor.ProfileURL = "https://github.com/" + login
		}
	}
	if repo := ev.GetRepo(); repo.GetName() != "" {
		out.Repo = &domain.Repo{
			Name: repo.GetName(),
			URL:  "https://github.com/" + repo.GetName(),
		}
		out.URL = out.Repo.URL
	}

	payload, err := ev.ParsePayload()
	if err != nil {
		payload = nil
	}
	applyPayload(&out, ev, payload)

	return out
}

// applyPayload fills category-specific display fields. Each case is a
// pure mapping from the typed payload; payloads go-github cannot parse
// land in the unknown fallback.
func applyPayload(out *domain.NormalizedEvent, ev *gh.Event, payload any) {
	repoName := "a repository"
	if out.Repo != nil {
		repoName = out.Repo.Name
	}

	switch p := payload.(type) {
	case *gh.PushEvent:
		out.Category = domain.CategoryPush
		out.Icon = "push"
		n := len(p.Commits)
		out.ActionText = fmt.Sprintf("pushed %d %s to %s in %s",
			n, pluralize("commit", n), shortRef(p.GetRef()), repoName)
		for i, c := range p.Commits {
			if i == maxCommitDetails {
				break
			}
			if msg := firstLine(c.GetMessage()); msg != "" {
				out.Details = append(out.Details, msg)
			}
		}
		if out.Repo != nil {
			out.URL = out.Repo.URL + "/commits/" + shortRef(p.GetRef())
		}

	case *gh.PullRequestEvent:
		out.Category = domain.CategoryPullRequest
		out.Icon = "pr"
		action := p.GetAction()
		if action == "closed" && p.GetPullRequest().GetMerged() {
			action = "merged"
		}
		out.ActionText = fmt.Sprintf("%s pull request #%d: %s",
			action, p.GetNumber(), p.GetPullRequest().GetTitle())
		if u := p.GetPullRequest().GetHTMLURL(); u != "" {
			out.URL = u
		}

	case *gh.IssuesEvent:
		out.Category = domain.CategoryIssue
		out.Icon = "issue"
		out.ActionText = fmt.Sprintf("%s issue #%d: %s",
			p.GetAction(), p.GetIssue().GetNumber(), p.GetIssue().GetTitle())
		if u := p.GetIssue().GetHTMLURL(); u != "" {
			out.URL = u
		}

	case *gh.IssueCommentEvent:
		out.Category = domain.CategoryIssueComment
		out.Icon = "comment"
		out.ActionText = fmt.Sprintf("commented on issue #%d: %s",
			p.GetIssue().GetNumber(), p.GetIssue().GetTitle())
		if body := excerpt(p.GetComment().GetBody()); body != "" {
			out.Details = []string{body}
		}
		if u := p.GetComment().GetHTMLURL(); u != "" {
			out.URL = u
		}

	case *gh.WatchEvent:
		out.Category = domain.CategoryStar
		out.Icon = "star"
		out.ActionText = "starred " + repoName

	case *gh.ForkEvent:
		out.Category = domain.CategoryFork
		out.Icon = "fork"
		forkee := p.GetForkee().GetFullName()
		if forkee == "" {
			out.ActionText = "forked " + repoName
		} else {
			out.ActionText = fmt.Sprintf("forked %s to %s", repoName, forkee)
		}
		if u := p.GetForkee().GetHTMLURL(); u != "" {
			out.URL = u
		}

	case *gh.CreateEvent:
		out.Category = domain.CategoryCreate
		out.Icon = "create"
		if p.GetRefType() == "repository" {
			out.ActionText = "created repository " + repoName
		} else {
			out.ActionText = fmt.Sprintf("created %s %s in %s",
				p.GetRefType(), p.GetRef(), repoName)
		}

	case *gh.ReleaseEvent:
		out.Category = domain.CategoryRelease
		out.Icon = "release"
		tag := p.GetRelease().GetTagName()
		if name := p.GetRelease().GetName(); name != "" {
			tag = name
		}
		out.ActionText = fmt.Sprintf("published release %s in %s", tag, repoName)
		if u := p.GetRelease().GetHTMLURL(); u != "" {
			out.URL = u
		}

	case *gh.PublicEvent:
		out.Category = domain.CategoryPublic
		out.Icon = "public"
		out.ActionText = "made " + repoName + " public"

	default:
		out.Category = domain.CategoryUnknown
		out.Icon = "activity"
		out.ActionText = ev.GetType()
	}
}

// shortRef strips the refs/heads/ or refs/tags/ prefix from a git ref.
func shortRef(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/heads/")
	ref = strings.TrimPrefix(ref, "refs/tags/")
	if ref == "" {
		return "main"
	}
	return ref
}

// firstLine returns the first line of a commit message, trimmed.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// excerpt collapses a comment body to a single bounded line.
func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > excerptLen {
		s = s[:excerptLen] + "…"
	}
	return s
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
