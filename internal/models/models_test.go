package models

import "testing"

func TestParseMode(t *testing.T) {
	tt := []struct {
		option  string
		want    Mode
		wantErr bool
	}{
		{option: "", want: ModeSave},
		{option: "save", want: ModeSave},
		{option: "SAVE ", want: ModeSave},
		{option: "download", want: ModeTransient},
		{option: "transient", want: ModeTransient},
		{option: "email", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.option, func(t *testing.T) {
			got, err := ParseMode(tc.option)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tc.option, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tc.option, got, tc.want)
			}
		})
	}
}

func TestListingRun(t *testing.T) {
	t.Run("built from result", func(t *testing.T) {
		result := ListingResult{StatusMessage: "Success! 2 videos processed.", ChannelName: "testchan", Count: 2}
		run := NewListingRun("https://www.youtube.com/@testchan", ModeTransient, result)

		if err := run.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !run.Succeeded() {
			t.Error("expected run to be successful")
		}
		if run.ChannelName() != "testchan" || run.VideoCount() != 2 {
			t.Errorf("unexpected run fields: %+v", run.JSON())
		}
		if run.CreatedAt().IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("validation", func(t *testing.T) {
		if err := NewListingRun("", ModeSave, ListingResult{}).Validate(); err == nil {
			t.Error("expected error for empty channel URL")
		}
		if err := NewListingRun("https://www.youtube.com/@x", Mode("fax"), ListingResult{}).Validate(); err == nil {
			t.Error("expected error for unknown mode")
		}
	})

	t.Run("failure result", func(t *testing.T) {
		res := Failure(KindToolNotFound, "Error: %s missing", "yt-dlp")
		if res.OK() {
			t.Error("failure should not be OK")
		}
		if res.StatusMessage != "Error: yt-dlp missing" {
			t.Errorf("unexpected message %q", res.StatusMessage)
		}
	})
}
