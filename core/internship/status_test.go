package internship

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "pending", want: StatusPending},
		{in: "finalized", want: StatusFinalized},
		{in: "accepted", want: StatusAccepted},
		{in: "rejected", want: StatusRejected},
		{in: "current", want: StatusCurrent},
		{in: "completed", want: StatusCompleted},
		{in: "lol", wantErr: true},
		{in: "", wantErr: true},
		{in: "Pending", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "pending to finalized", from: StatusPending, to: StatusFinalized, want: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, want: true},
		{name: "pending straight to accepted", from: StatusPending, to: StatusAccepted, want: true},
		{name: "pending cannot jump to current", from: StatusPending, to: StatusCurrent, want: false},
		{name: "finalized to accepted", from: StatusFinalized, to: StatusAccepted, want: true},
		{name: "finalized to rejected", from: StatusFinalized, to: StatusRejected, want: true},
		{name: "accepted to current", from: StatusAccepted, to: StatusCurrent, want: true},
		{name: "current to completed", from: StatusCurrent, to: StatusCompleted, want: true},
		{name: "rejected is terminal", from: StatusRejected, to: StatusCurrent, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCurrent, want: false},
		{name: "no going back", from: StatusCurrent, to: StatusAccepted, want: false},
		{name: "restamp same status", from: StatusCurrent, to: StatusCurrent, want: true},
		{name: "reconsider from rejected", from: StatusRejected, to: StatusPending, want: true},
		{name: "reconsider from completed", from: StatusCompleted, to: StatusPending, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
