package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

// Ensure Source implements the port.
var _ driven.ActivitySource = (*Source)(nil)

// fetchResult carries one stream's outcome across the join.
type fetchResult struct {
	events []*gh.Event
	resp   *gh.Response
	err    error
}

// FetchActivity retrieves, merges and normalizes the user's activity.
// The two upstream requests run concurrently and are awaited jointly;
// when the received-events stream is disabled an empty stand-in keeps
// the join symmetric.
func (s *Source) FetchActivity(ctx context.Context, opts domain.FetchOptions) (*domain.Feed, error) {
	client := s.client(ctx, opts.Token)
	perPage := opts.EffectivePerPage()

	primaryCh := make(chan fetchResult, 1)
	secondaryCh := make(chan fetchResult, 1)

	go func() {
		events, resp, err := s.listPerformed(ctx, client, opts.Username, perPage)
		primaryCh <- fetchResult{events: events, resp: resp, err: err}
	}()

	if opts.IncludeReceived {
		go func() {
			events, resp, err := s.listReceived(ctx, client, opts.Username, perPage)
			secondaryCh <- fetchResult{events: events, resp: resp, err: err}
		}()
	} else {
		secondaryCh <- fetchResult{}
	}

	primary := <-primaryCh
	secondary := <-secondaryCh

	if primary.err != nil {
		return nil, wrapError(primary.err, "list events")
	}
	if secondary.err != nil {
		// Secondary failures contribute zero events.
		logger.Warn("github: received-events fetch failed: %v", secondary.err)
		secondary.events = nil
	}

	merged := mergeByID(primary.events, secondary.events)
	logger.Debug("github: %d performed + %d received events, %d after merge",
		len(primary.events), len(secondary.events), len(merged))

	feed := &domain.Feed{Events: normalizeAll(merged)}
	domain.SortEventsDesc(feed.Events)

	if primary.resp != nil && primary.resp.Response != nil {
		feed.Rate = ParseRateInfo(primary.resp.Header)
		s.rateLimiter.UpdateFromResponse(primary.resp.Response)
	}

	return feed, nil
}

// listPerformed fetches public events performed by the user.
func (s *Source) listPerformed(
	ctx context.Context, client *gh.Client, username string, perPage int,
) ([]*gh.Event, *gh.Response, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}
	opts := &gh.ListOptions{PerPage: perPage}
	return client.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
}

// listReceived fetches public events received by the user.
func (s *Source) listReceived(
	ctx context.Context, client *gh.Client, username string, perPage int,
) ([]*gh.Event, *gh.Response, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}
	opts := &gh.ListOptions{PerPage: perPage}
	return client.Activity.ListEventsReceivedByUser(ctx, username, true, opts)
}

// mergeByID deduplicates raw events across streams. The map is keyed by
// event id; later entries overwrite earlier ones in place, so the
// result keeps first-seen order with last-seen content.
func mergeByID(streams ...[]*gh.Event) []*gh.Event {
	var merged []*gh.Event
	index := make(map[string]int)

	for _, stream := range streams {
		for _, ev := range stream {
			if ev == nil {
				continue
			}
			id := ev.GetID()
			if pos, ok := index[id]; ok {
				merged[pos] = ev
				continue
			}
			index[id] = len(merged)
			merged = append(merged, ev)
		}
	}
	return merged
}
