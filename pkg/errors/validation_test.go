package errors

import "testing"

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "draft", false},
		{"with separators", "state.review-2_a", false},
		{"empty", "", true},
		{"whitespace", "a b", true},
		{"control char", "a\x01b", true},
		{"null byte", "a\x00b", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("error should carry INVALID_GRAPH code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateWorkflowName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Order Fulfillment", false},
		{"empty", "", true},
		{"only whitespace", "   ", true},
		{"control char", "bad\x07name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWorkflowName(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkflowName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkflowID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"uuid", "2b3f9a6e-1d4c-4e8a-9f01-6c7d8e9f0a1b", false},
		{"uppercase uuid", "2B3F9A6E-1D4C-4E8A-9F01-6C7D8E9F0A1B", false},
		{"empty", "", true},
		{"not a uuid", "workflow-42", true},
		{"path traversal", "../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWorkflowID(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkflowID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "out/layout.svg", false},
		{"absolute", "/tmp/layout.svg", false},
		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateOutputPath(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
