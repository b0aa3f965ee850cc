// Package telegram ingests media posts from the tracked channel over
// MTProto. The reader resolves the channel once, then polls history for
// messages newer than the last ingested ID, downloading media to local
// files and recording each post for the resolution pipeline.
package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
	"github.com/kavehram/ganjine/internal/platform/config"
	"github.com/kavehram/ganjine/internal/platform/observability"
	db "github.com/kavehram/ganjine/internal/storage"
)

// Media type constants stored on items.
const (
	MediaTypePhoto    = "photo"
	MediaTypeVideo    = "video"
	MediaTypeDocument = "document"
)

const maxDownloadSize = 2 << 30 // 2GB, Telegram's own cap

type resolvedChannel struct {
	peerID     int64
	accessHash int64
	title      string
}

// Reader polls one channel and files its media posts into storage.
type Reader struct {
	cfg         *config.Config
	database    *db.DB
	client      *telegram.Client
	logger      *zerolog.Logger
	limiter     *rate.Limiter
	downloadSem chan struct{}
	channel     *resolvedChannel
}

// New creates a channel reader.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *Reader {
	rps := cfg.RateLimitRPS
	if rps < 1 {
		rps = 1
	}

	concurrency := cfg.DownloadConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Reader{
		cfg:         cfg,
		database:    database,
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(float64(rps)), 1),
		downloadSem: make(chan struct{}, concurrency),
	}
}

// Run connects, authenticates, and polls until the context is canceled.
func (r *Reader) Run(ctx context.Context) error {
	client := telegram.NewClient(r.cfg.TGAPIID, r.cfg.TGAPIHash, telegram.Options{
		SessionStorage: &telegram.FileSessionStorage{
			Path: r.cfg.TGSessionPath,
		},
	})

	r.client = client

	return client.Run(ctx, func(ctx context.Context) error {
		if err := client.Auth().IfNecessary(ctx, r.authFlow()); err != nil {
			return err
		}

		r.logger.Info().Msg("Successfully authenticated as user")

		return r.pollChannel(ctx)
	})
}

func (r *Reader) pollChannel(ctx context.Context) error {
	api := tg.NewClient(r.client)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		count, err := r.fetchNewMessages(ctx, api)
		if err != nil {
			r.logger.Error().Err(err).Str("channel", r.cfg.ChannelUsername).Msg("failed to fetch messages")
		} else if count > 0 {
			r.logger.Info().Str("channel", r.cfg.ChannelUsername).Int("count", count).Msg("Ingested media posts")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.ReaderPollInterval):
		}
	}
}

// resolveChannel resolves the configured username once and caches the peer.
func (r *Reader) resolveChannel(ctx context.Context, api *tg.Client) (*resolvedChannel, error) {
	if r.channel != nil {
		return r.channel, nil
	}

	username := strings.TrimPrefix(r.cfg.ChannelUsername, "@")

	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("resolve username: %w", err)
	}

	if len(resolved.Chats) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrChannelNotFound, username)
	}

	channel, ok := resolved.Chats[0].(*tg.Channel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotAChannel, username)
	}

	r.channel = &resolvedChannel{
		peerID:     channel.ID,
		accessHash: channel.AccessHash,
		title:      channel.Title,
	}

	r.logger.Info().
		Str("username", username).
		Int64("peer_id", channel.ID).
		Str("title", channel.Title).
		Msg("Resolved channel")

	return r.channel, nil
}

func (r *Reader) fetchNewMessages(ctx context.Context, api *tg.Client) (int, error) {
	ch, err := r.resolveChannel(ctx, api)
	if err != nil {
		return 0, err
	}

	lastID, err := r.database.LastMessageID(ctx)
	if err != nil {
		return 0, err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req := &tg.MessagesGetHistoryRequest{
		Peer: &tg.InputPeerChannel{
			ChannelID:  ch.peerID,
			AccessHash: ch.accessHash,
		},
		Limit: r.cfg.ReaderFetchLimit,
	}

	if lastID > 0 {
		// Fetch messages newer than last seen
		req.OffsetID = int(lastID)
		req.AddOffset = -r.cfg.ReaderFetchLimit
	}

	history, err := api.MessagesGetHistory(ctx, req)
	if err != nil {
		floodErr, ok := tgerr.As(err)
		if ok && floodErr.Type == "FLOOD_WAIT" {
			r.logger.Warn().Int("seconds", floodErr.Argument).Msg("flood wait")

			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Duration(floodErr.Argument) * time.Second):
			}

			return 0, nil
		}

		return 0, fmt.Errorf("get history: %w", err)
	}

	var messages []tg.MessageClass

	switch h := history.(type) {
	case *tg.MessagesMessages:
		messages = h.Messages
	case *tg.MessagesMessagesSlice:
		messages = h.Messages
	case *tg.MessagesChannelMessages:
		messages = h.Messages
	case *tg.MessagesMessagesNotModified:
		return 0, nil
	}

	count := 0

	for _, m := range messages {
		msg, ok := m.(*tg.Message)
		if !ok {
			continue
		}

		if int64(msg.ID) <= lastID || msg.Media == nil {
			continue
		}

		mediaType := classifyMedia(msg.Media)
		if mediaType == "" {
			continue
		}

		item := &domain.MediaItem{
			TGMessageID: int64(msg.ID),
			TGDate:      time.Unix(int64(msg.Date), 0).UTC(),
			Caption:     msg.Message,
			MediaType:   mediaType,
		}

		id, inserted, err := r.database.UpsertItem(ctx, item)
		if err != nil {
			r.logger.Error().Err(err).Int("msg_id", msg.ID).Msg("failed to save media item")
			continue
		}

		if !inserted {
			continue
		}

		count++

		observability.MessagesIngested.WithLabelValues(mediaType).Inc()

		go r.downloadAndAttach(ctx, api, id, msg.ID, msg.Media)
	}

	return count, nil
}

// downloadAndAttach downloads the media for one item and records the file
// path. Downloads run concurrently up to the configured limit.
func (r *Reader) downloadAndAttach(ctx context.Context, api *tg.Client, itemID string, msgID int, media tg.MessageMediaClass) {
	select {
	case r.downloadSem <- struct{}{}:
		defer func() { <-r.downloadSem }()
	case <-ctx.Done():
		return
	}

	path, err := r.downloadMedia(ctx, api, msgID, media)
	if err != nil {
		r.logger.Warn().Err(err).Int("msg_id", msgID).Msg("media download failed")
		observability.MediaDownloaded.WithLabelValues("failed").Inc()

		if err := r.database.MarkFailed(ctx, itemID, err.Error()); err != nil {
			r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to mark item failed")
		}

		return
	}

	if path == "" {
		return
	}

	if _, err := r.database.Pool.Exec(ctx, `
		UPDATE media_items SET file_path = $2, updated_at = now() WHERE id = $1
	`, itemID, path); err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to record file path")

		return
	}

	observability.MediaDownloaded.WithLabelValues("ok").Inc()
}

func (r *Reader) downloadMedia(ctx context.Context, api *tg.Client, msgID int, media tg.MessageMediaClass) (string, error) {
	location, ext, err := fileLocation(media)
	if err != nil || location == nil {
		return "", err
	}

	if err := os.MkdirAll(r.cfg.DownloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(r.cfg.DownloadDir, fmt.Sprintf("%d%s", msgID, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := downloader.NewDownloader().Download(api, location).Stream(ctx, f); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("download media: %w", err)
	}

	return path, nil
}

func classifyMedia(media tg.MessageMediaClass) string {
	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		return MediaTypePhoto
	case *tg.MessageMediaDocument:
		doc, ok := m.Document.(*tg.Document)
		if !ok {
			return ""
		}

		if strings.HasPrefix(doc.MimeType, "video/") {
			return MediaTypeVideo
		}

		return MediaTypeDocument
	default:
		return ""
	}
}

// fileLocation picks the downloadable location and file extension for a
// media object. Photos use the largest available size.
func fileLocation(media tg.MessageMediaClass) (tg.InputFileLocationClass, string, error) {
	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := m.Photo.(*tg.Photo)
		if !ok {
			return nil, "", nil
		}

		thumbSize := largestPhotoSize(photo.Sizes)
		if thumbSize == "" {
			return nil, "", nil
		}

		return &tg.InputPhotoFileLocation{
			ID:            photo.ID,
			AccessHash:    photo.AccessHash,
			FileReference: photo.FileReference,
			ThumbSize:     thumbSize,
		}, ".jpg", nil

	case *tg.MessageMediaDocument:
		doc, ok := m.Document.(*tg.Document)
		if !ok {
			return nil, "", nil
		}

		if doc.Size > maxDownloadSize {
			return nil, "", fmt.Errorf("%w: document too large (%d bytes)", apperrors.ErrNoMedia, doc.Size)
		}

		return &tg.InputDocumentFileLocation{
			ID:            doc.ID,
			AccessHash:    doc.AccessHash,
			FileReference: doc.FileReference,
		}, documentExt(doc), nil

	default:
		return nil, "", nil
	}
}

func largestPhotoSize(sizes []tg.PhotoSizeClass) string {
	var (
		thumbSize string
		maxArea   int
	)

	for _, size := range sizes {
		switch s := size.(type) {
		case *tg.PhotoSize:
			if s.W*s.H > maxArea {
				maxArea = s.W * s.H
				thumbSize = s.Type
			}
		case *tg.PhotoSizeProgressive:
			if s.W*s.H > maxArea {
				maxArea = s.W * s.H
				thumbSize = s.Type
			}
		}
	}

	return thumbSize
}

func documentExt(doc *tg.Document) string {
	for _, attr := range doc.Attributes {
		if filename, ok := attr.(*tg.DocumentAttributeFilename); ok {
			if ext := filepath.Ext(filename.FileName); ext != "" {
				return ext
			}
		}
	}

	switch doc.MimeType {
	case "video/mp4":
		return ".mp4"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".bin"
	}
}
