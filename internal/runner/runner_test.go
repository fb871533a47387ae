package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"tfocus/internal/domain"
	"tfocus/internal/platform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestArgs(t *testing.T) {
	r := New(Options{
		Binary: "terraform",
		ExtraArgs: map[domain.Action][]string{
			domain.ActionApply: {"-auto-approve"},
		},
	}, platform.Current(), nil)

	tests := []struct {
		name string
		req  domain.RunRequest
		want []string
	}{
		{
			name: "single target",
			req:  domain.NewRunRequest(domain.ActionPlan, []string{"aws_instance.web"}, ""),
			want: []string{"plan", "-target=aws_instance.web"},
		},
		{
			name: "selection order is kept",
			req:  domain.NewRunRequest(domain.ActionPlan, []string{"module.vpc", "aws_instance.db", "aws_instance.web"}, ""),
			want: []string{"plan", "-target=module.vpc", "-target=aws_instance.db", "-target=aws_instance.web"},
		},
		{
			name: "apply extra args follow targets",
			req:  domain.NewRunRequest(domain.ActionApply, []string{"aws_instance.web"}, ""),
			want: []string{"apply", "-target=aws_instance.web", "-auto-approve"},
		},
		{
			name: "indexed target",
			req:  domain.NewRunRequest(domain.ActionPlan, []string{`aws_instance.web["a"]`}, ""),
			want: []string{"plan", `-target=aws_instance.web["a"]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Args(tt.req))
		})
	}
}

func TestArgsCustomFlag(t *testing.T) {
	r := New(Options{Binary: "tofu", TargetFlag: "--target"}, platform.Current(), nil)
	req := domain.NewRunRequest(domain.ActionPlan, []string{"a.b"}, "")

	assert.Equal(t, []string{"plan", "--target=a.b"}, r.Args(req))
	assert.Equal(t, "tofu plan --target=a.b", r.CommandLine(req))
}

func TestRunRequestIsACopy(t *testing.T) {
	targets := []string{"a.b"}
	req := domain.NewRunRequest(domain.ActionPlan, targets, "")
	targets[0] = "changed"

	assert.Equal(t, []string{"a.b"}, req.Targets)
}
