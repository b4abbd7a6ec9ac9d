package ai

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Transcriber turns recorded speech into text with the OpenAI audio API.
type Transcriber struct {
	client openai.Client
	model  openai.AudioModel
}

// NewTranscriber creates a Whisper-backed transcriber. baseURL and
// httpClient are optional.
func NewTranscriber(apiKey, baseURL string, httpClient *http.Client) (*Transcriber, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &Transcriber{
		client: openai.NewClient(opts...),
		model:  openai.AudioModelWhisper1,
	}, nil
}

// Transcribe returns the transcript of audio. locale is a speech locale such
// as "ja-JP"; only its language part is sent.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename, locale string) (string, error) {
	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(audio, filename, ""),
		Model: t.model,
	}
	if lang, _, _ := strings.Cut(locale, "-"); lang != "" {
		params.Language = openai.String(strings.ToLower(lang))
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
