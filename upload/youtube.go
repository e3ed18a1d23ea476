package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"econoshorts/config"
	"econoshorts/types"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is the validated YouTube listing for one video.
type Metadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

// YouTubeUploader publishes rendered shorts via the YouTube Data API using
// a service account.
type YouTubeUploader struct {
	service *youtube.Service
	cfg     config.UploadConfig
}

func NewYouTubeUploader(ctx context.Context, cfg config.UploadConfig) (*YouTubeUploader, error) {
	data, err := os.ReadFile(cfg.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTubeUploader{service: service, cfg: cfg}, nil
}

// Upload publishes the video and, when available, its thumbnail. It returns
// the shorts URL.
func (u *YouTubeUploader) Upload(ctx context.Context, videoPath, thumbnailPath string, script *types.Script) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}
	log.Printf("[upload] 📤 uploading %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

	meta := BuildMetadata(script, u.cfg)
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video).Media(file).Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}
	videoID := resp.Id

	if thumbnailPath != "" {
		if err := u.setThumbnail(ctx, videoID, thumbnailPath); err != nil {
			log.Printf("[upload] thumbnail set failed: %v", err)
		}
	}

	url := "https://youtube.com/shorts/" + videoID
	log.Printf("[upload] ✅ published %s", url)
	return url, nil
}

func (u *YouTubeUploader) setThumbnail(ctx context.Context, videoID, thumbnailPath string) error {
	file, err := os.Open(thumbnailPath)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = u.service.Thumbnails.Set(videoID).Media(file).Context(ctx).Do()
	return err
}

// BuildMetadata derives the listing from a script while honoring the API
// limits: 100-char title, 5000-char description, at most 15 tags.
func BuildMetadata(script *types.Script, cfg config.UploadConfig) Metadata {
	title := script.Title
	if title == "" {
		title = script.Hook
	}
	title = truncateRunes(title, config.MaxTitleLength)

	var b strings.Builder
	b.WriteString(script.Hook)
	if len(script.KeyPoints) > 0 {
		b.WriteString("\n\n")
		for _, p := range script.KeyPoints {
			b.WriteString("• " + p + "\n")
		}
	}
	b.WriteString("\n투자 판단의 책임은 본인에게 있습니다.\n\n")
	b.WriteString(strings.Join(script.Hashtags, " "))
	description := truncateRunes(b.String(), config.MaxDescriptionLength)

	tags := make([]string, 0, config.MaxTags)
	for _, h := range script.Hashtags {
		if len(tags) == config.MaxTags {
			break
		}
		if tag := strings.TrimPrefix(h, "#"); tag != "" {
			tags = append(tags, tag)
		}
	}

	return Metadata{
		Title:         title,
		Description:   description,
		Tags:          tags,
		CategoryID:    cfg.CategoryID,
		PrivacyStatus: cfg.PrivacyStatus,
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
