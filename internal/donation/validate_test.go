package donation

import "testing"

func validInput() CreateDonationInput {
	return CreateDonationInput{
		Slug:      "fulano",
		Name:      "Maria",
		Message:   "muito obrigado",
		Price:     1000,
		CreatorID: "acct_123",
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateDonationInput)
		wantMsg string
	}{
		{
			name:   "valid input passes",
			mutate: func(in *CreateDonationInput) {},
		},
		{
			name:    "empty slug",
			mutate:  func(in *CreateDonationInput) { in.Slug = "" },
			wantMsg: "O username precisa ter pelo menos 1 letra",
		},
		{
			name:    "empty name",
			mutate:  func(in *CreateDonationInput) { in.Name = "" },
			wantMsg: "O nome precisa ter pelo menos 1 letra",
		},
		{
			name:    "short message",
			mutate:  func(in *CreateDonationInput) { in.Message = "oi" },
			wantMsg: "A mensagem precisa ter pelo menos 5 letras",
		},
		{
			name:    "empty message",
			mutate:  func(in *CreateDonationInput) { in.Message = "" },
			wantMsg: "A mensagem precisa ter pelo menos 5 letras",
		},
		{
			name:    "price below minimum",
			mutate:  func(in *CreateDonationInput) { in.Price = 9 },
			wantMsg: "O valor precisa ser maior que 10",
		},
		{
			name:    "zero price",
			mutate:  func(in *CreateDonationInput) { in.Price = 0 },
			wantMsg: "O valor precisa ser maior que 10",
		},
		{
			name:    "missing creator id",
			mutate:  func(in *CreateDonationInput) { in.CreatorID = "" },
			wantMsg: "Criador Não Encontrado",
		},
		{
			name: "first violation wins",
			mutate: func(in *CreateDonationInput) {
				in.Slug = ""
				in.Price = 0
			},
			wantMsg: "O username precisa ter pelo menos 1 letra",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := ValidateInput(in)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateInput() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateInput() = nil, want message %q", tc.wantMsg)
			}
			if err.Message != tc.wantMsg {
				t.Fatalf("ValidateInput() message = %q, want %q", err.Message, tc.wantMsg)
			}
		})
	}
}

func TestValidateInputPriceAtMinimumPasses(t *testing.T) {
	in := validInput()
	in.Price = 10
	if err := ValidateInput(in); err != nil {
		t.Fatalf("ValidateInput() = %v, want nil", err)
	}
}

func TestApplicationFee(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{amount: 1000, want: 100},
		{amount: 10, want: 1},
		{amount: 19, want: 1},
		{amount: 99, want: 9},
		{amount: 101, want: 10},
	}
	for _, tc := range tests {
		if got := ApplicationFee(tc.amount); got != tc.want {
			t.Fatalf("ApplicationFee(%d) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
