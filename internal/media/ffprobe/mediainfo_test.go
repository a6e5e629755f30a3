package ffprobe

import (
	"errors"
	"math"
	"testing"
)

func TestParseMediaInfo(t *testing.T) {
	data := []byte(`{"streams":[{"codec_type":"video","width":1920,"height":1080,"r_frame_rate":"30000/1001","codec_name":"h264"}],"format":{"duration":"12.5"}}`)
	info, err := ParseMediaInfo(data)
	if err != nil {
		t.Fatalf("ParseMediaInfo returned error: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 || info.Codec != "h264" || info.Duration != 12.5 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if math.Abs(info.FPS-29.97) > 0.01 {
		t.Fatalf("unexpected fps: %v", info.FPS)
	}
}

func TestParseMediaInfoUsesFirstVideoStream(t *testing.T) {
	data := []byte(`{"streams":[
		{"codec_type":"audio","codec_name":"aac"},
		{"codec_type":"video","codec_name":"hevc","width":3840,"height":2160,"r_frame_rate":"24/1"},
		{"codec_type":"video","codec_name":"mjpeg","width":320,"height":240,"r_frame_rate":"90000/1"}
	],"format":{"duration":"7200.000000"}}`)
	info, err := ParseMediaInfo(data)
	if err != nil {
		t.Fatalf("ParseMediaInfo returned error: %v", err)
	}
	if info.Codec != "hevc" || info.Width != 3840 || info.FPS != 24 || info.Duration != 7200 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestParseMediaInfoDefaultsMissingFields(t *testing.T) {
	info, err := ParseMediaInfo([]byte(`{"streams":[{"codec_type":"video"}]}`))
	if err != nil {
		t.Fatalf("ParseMediaInfo returned error: %v", err)
	}
	if info != (MediaInfo{}) {
		t.Fatalf("expected zero-valued info, got %+v", info)
	}
}

func TestParseMediaInfoMissingFrameRateKeepsOtherFields(t *testing.T) {
	data := []byte(`{"streams":[{"codec_type":"video","codec_name":"vp9","width":1280,"height":720}],"format":{"duration":"95.25"}}`)
	info, err := ParseMediaInfo(data)
	if err != nil {
		t.Fatalf("ParseMediaInfo returned error: %v", err)
	}
	want := MediaInfo{Duration: 95.25, Width: 1280, Height: 720, FPS: 0, Codec: "vp9"}
	if info != want {
		t.Fatalf("unexpected info: got %+v want %+v", info, want)
	}
}

func TestParseMediaInfoToleratesMistypedFields(t *testing.T) {
	tests := []struct {
		name string
		data string
		want MediaInfo
	}{
		{
			name: "numeric duration",
			data: `{"streams":[{"codec_type":"video","codec_name":"h264","width":1920,"height":1080,"r_frame_rate":"25/1"}],"format":{"duration":12.5}}`,
			want: MediaInfo{Duration: 0, Width: 1920, Height: 1080, FPS: 25, Codec: "h264"},
		},
		{
			name: "odd audio stream before video",
			data: `{"streams":[{"codec_type":"audio","channels":"2","sample_rate":48000},{"codec_type":"video","codec_name":"av1","width":640,"height":360,"r_frame_rate":"30/1"}],"format":{"duration":"3"}}`,
			want: MediaInfo{Duration: 3, Width: 640, Height: 360, FPS: 30, Codec: "av1"},
		},
		{
			name: "whole float width",
			data: `{"streams":[{"codec_type":"video","width":1920.0,"height":1080}]}`,
			want: MediaInfo{Width: 1920, Height: 1080},
		},
		{
			name: "string width and numeric codec",
			data: `{"streams":[{"codec_type":"video","width":"wide","height":2.5,"codec_name":264,"r_frame_rate":30}]}`,
			want: MediaInfo{},
		},
		{
			name: "non-object entries and format",
			data: `{"streams":[7,null,{"codec_type":"video","codec_name":"h264"}],"format":"mp4"}`,
			want: MediaInfo{Codec: "h264"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseMediaInfo([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseMediaInfo returned error: %v", err)
			}
			if info != tt.want {
				t.Fatalf("unexpected info: got %+v want %+v", info, tt.want)
			}
		})
	}
}

func TestParseMediaInfoErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "missing streams", data: `{"format":{"duration":"1"}}`, want: "invalid probe output"},
		{name: "null streams", data: `{"streams":null}`, want: "invalid probe output"},
		{name: "audio only", data: `{"streams":[{"codec_type":"audio","codec_name":"aac"}]}`, want: "no video stream"},
		{name: "empty streams", data: `{"streams":[]}`, want: "no video stream"},
		{name: "not json", data: `ffprobe version 6.1`},
		{name: "streams object", data: `{"streams":{}}`, want: "invalid probe output"},
		{name: "streams string", data: `{"streams":"none"}`, want: "invalid probe output"},
		{name: "top-level array", data: `[]`, want: "invalid probe output"},
		{name: "top-level number", data: `42`, want: "invalid probe output"},
		{name: "missing streams with odd format", data: `{"format":{"duration":12.5}}`, want: "invalid probe output"},
		{name: "trailing garbage", data: `{"streams":[]} extra`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMediaInfo([]byte(tt.data))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if tt.want != "" && err.Error() != tt.want {
				t.Fatalf("unexpected message: got %q want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30000/1001", 30000.0 / 1001.0},
		{"25/1", 25},
		{"24000/1001", 24000.0 / 1001.0},
		{" 50/2 ", 25},
		{"0/0", 0},
		{"1/0", 0},
		{"", 0},
		{"30", 0},
		{"1/2/3", 0},
		{"a/b", 0},
		{"-30/1", 0},
	}
	for _, tt := range tests {
		if got := ParseFrameRate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ParseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("expected zero kind for plain error")
	}
	wrapped := errors.Join(errors.New("ctx"), parseError(msgNoVideoStream, nil))
	if KindOf(wrapped) != KindParse {
		t.Fatalf("expected parse kind through wrapping")
	}
	if KindParse.String() != "parse" || Kind(0).String() != "unknown" {
		t.Fatal("unexpected kind strings")
	}
}
