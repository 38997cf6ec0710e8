package util

import "testing"

type postPayload struct {
	Content  string `validate:"required,max=1000"`
	PostType string `validate:"required,post_type"`
}

type listingPayload struct {
	RequestType string `validate:"required,request_type"`
	Category    string `validate:"required"`
	Description string `validate:"required,max=1000"`
}

type profilePayload struct {
	DisplayName string `validate:"required"`
	ProfileType string `validate:"required,profile_type"`
}

func TestValidateStructPost(t *testing.T) {
	testCases := []struct {
		name    string
		payload postPayload
		wantErr bool
	}{
		{"Valid Text Post", postPayload{Content: "hello", PostType: "text"}, false},
		{"Valid Event Post", postPayload{Content: "gig friday", PostType: "event"}, false},
		{"Missing Content", postPayload{PostType: "text"}, true},
		{"Unknown Post Type", postPayload{Content: "hi", PostType: "story"}, true},
		{"Missing Post Type", postPayload{Content: "hi"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.payload)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(%+v) error = %v; wantErr %v", tc.payload, err, tc.wantErr)
			}
		})
	}
}

func TestValidateStructListing(t *testing.T) {
	testCases := []struct {
		name    string
		payload listingPayload
		wantErr bool
	}{
		{"Valid Offer", listingPayload{RequestType: "offer", Category: "dj", Description: "set available"}, false},
		{"Valid Demand", listingPayload{RequestType: "demand", Category: "sound", Description: "need an engineer"}, false},
		{"Unknown Type", listingPayload{RequestType: "swap", Category: "dj", Description: "x"}, true},
		{"Missing Category", listingPayload{RequestType: "offer", Description: "x"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.payload)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(%+v) error = %v; wantErr %v", tc.payload, err, tc.wantErr)
			}
		})
	}
}

func TestValidateStructProfile(t *testing.T) {
	testCases := []struct {
		name    string
		payload profilePayload
		wantErr bool
	}{
		{"Artist", profilePayload{DisplayName: "DJ Nova", ProfileType: "artist"}, false},
		{"Venue", profilePayload{DisplayName: "Blue Note", ProfileType: "venue"}, false},
		{"Influencer", profilePayload{DisplayName: "V", ProfileType: "influencer"}, false},
		{"Unknown Type", profilePayload{DisplayName: "X", ProfileType: "fan"}, true},
		{"Missing Name", profilePayload{ProfileType: "artist"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.payload)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(%+v) error = %v; wantErr %v", tc.payload, err, tc.wantErr)
			}
		})
	}
}
