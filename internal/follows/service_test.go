package follows_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ladle/internal/follows"
	"ladle/internal/notifications"
	"ladle/internal/testsupport"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
  <title>料理チャンネル</title>
  <entry>
    <id>yt:video:abc123DEF45</id>
    <yt:videoId>abc123DEF45</yt:videoId>
    <title>手羽先の唐揚げ</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123DEF45"/>
    <published>2026-08-24T10:00:00+00:00</published>
  </entry>
  <entry>
    <id>yt:video:xyz987GHI21</id>
    <yt:videoId>xyz987GHI21</yt:videoId>
    <title>基本の出汁</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=xyz987GHI21"/>
    <published>2026-08-20T08:30:00+00:00</published>
  </entry>
  <entry>
    <id>yt:video:old00000001</id>
    <yt:videoId>old00000001</yt:videoId>
    <title>昔の動画</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=old00000001"/>
    <published>2026-07-01T12:00:00+00:00</published>
  </entry>
</feed>`

type spyNotifier struct {
	events   []notifications.Event
	payloads []notifications.Payload
}

func (s *spyNotifier) Publish(_ context.Context, event notifications.Event, payload notifications.Payload) error {
	s.events = append(s.events, event)
	s.payloads = append(s.payloads, payload)
	return nil
}

func newFeedServer(t *testing.T, wantChannel string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channel_id"); got != wantChannel {
			t.Errorf("unexpected channel_id: got %q want %q", got, wantChannel)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(feedFixture))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRecentVideosMapsFeed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	server := newFeedServer(t, "UCkitchen0001")

	svc := follows.NewService(st, follows.Options{BaseURL: server.URL})
	videos, err := svc.RecentVideos(context.Background(), "UCkitchen0001")
	if err != nil {
		t.Fatalf("RecentVideos failed: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(videos))
	}

	first := videos[0]
	if first.VideoID != "abc123DEF45" {
		t.Fatalf("unexpected video id: %q", first.VideoID)
	}
	if first.Title != "手羽先の唐揚げ" || first.Channel != "料理チャンネル" {
		t.Fatalf("unexpected video mapping: %#v", first)
	}
	if first.URL != "https://www.youtube.com/watch?v=abc123DEF45" {
		t.Fatalf("unexpected video URL: %q", first.URL)
	}
	want := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published time: %v", first.PublishedAt)
	}
}

func TestRecentVideosHonorsMaxVideos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	server := newFeedServer(t, "UCkitchen0001")

	svc := follows.NewService(st, follows.Options{BaseURL: server.URL, MaxVideos: 2})
	videos, err := svc.RecentVideos(context.Background(), "UCkitchen0001")
	if err != nil {
		t.Fatalf("RecentVideos failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected cap at 2 videos, got %d", len(videos))
	}
}

func TestCheckNewFirstPollOnlySetsMarker(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	server := newFeedServer(t, "UCkitchen0001")

	ctx := context.Background()
	follow, err := st.CreateFollow(ctx, "UCkitchen0001", "")
	if err != nil {
		t.Fatalf("CreateFollow failed: %v", err)
	}

	notifier := &spyNotifier{}
	svc := follows.NewService(st, follows.Options{BaseURL: server.URL, Notifier: notifier})

	updates, err := svc.CheckNew(ctx)
	if err != nil {
		t.Fatalf("CheckNew failed: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("expected no updates on first poll, got %#v", updates)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("expected no notifications on first poll, got %v", notifier.events)
	}

	touched, err := st.GetFollow(ctx, follow.ID)
	if err != nil {
		t.Fatalf("GetFollow failed: %v", err)
	}
	if touched.LastCheckedAt == nil {
		t.Fatal("expected poll marker recorded")
	}
	if touched.ChannelName != "料理チャンネル" {
		t.Fatalf("expected channel name picked up from feed, got %q", touched.ChannelName)
	}
}

func TestCheckNewReportsFreshUploads(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	server := newFeedServer(t, "UCkitchen0001")

	ctx := context.Background()
	follow, err := st.CreateFollow(ctx, "UCkitchen0001", "料理チャンネル")
	if err != nil {
		t.Fatalf("CreateFollow failed: %v", err)
	}
	marker := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	if err := st.TouchFollow(ctx, follow.ID, marker); err != nil {
		t.Fatalf("TouchFollow failed: %v", err)
	}

	notifier := &spyNotifier{}
	svc := follows.NewService(st, follows.Options{BaseURL: server.URL, Notifier: notifier})

	updates, err := svc.CheckNew(ctx)
	if err != nil {
		t.Fatalf("CheckNew failed: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected one channel update, got %d", len(updates))
	}
	update := updates[0]
	if update.ChannelID != "UCkitchen0001" || update.ChannelName != "料理チャンネル" {
		t.Fatalf("unexpected update: %#v", update)
	}
	if len(update.Videos) != 1 || update.Videos[0].VideoID != "abc123DEF45" {
		t.Fatalf("expected only the upload after the marker, got %#v", update.Videos)
	}

	if len(notifier.events) != 1 || notifier.events[0] != notifications.EventNewVideos {
		t.Fatalf("unexpected notifications: %v", notifier.events)
	}
	payload := notifier.payloads[0]
	if payload["count"] != "1" || payload["channel"] != "料理チャンネル" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if payload["titles"] != "手羽先の唐揚げ" {
		t.Fatalf("unexpected titles payload: %q", payload["titles"])
	}

	touched, err := st.GetFollow(ctx, follow.ID)
	if err != nil {
		t.Fatalf("GetFollow failed: %v", err)
	}
	if touched.LastCheckedAt == nil || !touched.LastCheckedAt.After(marker) {
		t.Fatalf("expected poll marker advanced past %v, got %v", marker, touched.LastCheckedAt)
	}
}

func TestCheckNewSkipsFailingFeeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream offline", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	follow, err := st.CreateFollow(ctx, "UCkitchen0001", "料理チャンネル")
	if err != nil {
		t.Fatalf("CreateFollow failed: %v", err)
	}
	marker := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	if err := st.TouchFollow(ctx, follow.ID, marker); err != nil {
		t.Fatalf("TouchFollow failed: %v", err)
	}

	notifier := &spyNotifier{}
	svc := follows.NewService(st, follows.Options{BaseURL: server.URL, Notifier: notifier})

	updates, err := svc.CheckNew(ctx)
	if err != nil {
		t.Fatalf("expected feed failure to be skipped, got %v", err)
	}
	if len(updates) != 0 || len(notifier.events) != 0 {
		t.Fatalf("expected no updates for failing feed, got %#v %v", updates, notifier.events)
	}

	unchanged, err := st.GetFollow(ctx, follow.ID)
	if err != nil {
		t.Fatalf("GetFollow failed: %v", err)
	}
	if unchanged.LastCheckedAt == nil || !unchanged.LastCheckedAt.Equal(marker) {
		t.Fatalf("expected poll marker untouched on failure, got %v", unchanged.LastCheckedAt)
	}
}
