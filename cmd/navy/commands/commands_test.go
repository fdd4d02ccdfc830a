package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/cmd/navy/commands"
	"go.trai.ch/navy/internal/app"
	"go.trai.ch/navy/internal/build"
	"go.trai.ch/navy/internal/core/domain"
)

type runCall struct {
	op       app.Operation
	name     string
	services []string
	opts     app.RunOptions
}

type mockApp struct {
	defaultName string
	runs        []runCall
	runErr      error
	services    []domain.RunningService
	statuses    []app.EnvironmentStatus
	port        int
	portArgs    []any
	destroyed   []string
	defaults    []string
}

func (m *mockApp) ResolveName(name string) string {
	if name != "" {
		return name
	}
	if m.defaultName != "" {
		return m.defaultName
	}
	return domain.DefaultEnvironmentName
}

func (m *mockApp) Run(_ context.Context, op app.Operation, name string, services []string, opts app.RunOptions) error {
	m.runs = append(m.runs, runCall{op: op, name: name, services: services, opts: opts})
	return m.runErr
}

func (m *mockApp) PS(_ context.Context, _ string) ([]domain.RunningService, error) {
	return m.services, nil
}

func (m *mockApp) Port(_ context.Context, name, service string, internal int) (int, error) {
	m.portArgs = []any{name, service, internal}
	if m.port == 0 {
		return 0, domain.ErrServiceNotRunning.With("service", service)
	}
	return m.port, nil
}

func (m *mockApp) Destroy(_ context.Context, name string) error {
	m.destroyed = append(m.destroyed, name)
	return nil
}

func (m *mockApp) Status(_ context.Context) ([]app.EnvironmentStatus, error) {
	return m.statuses, nil
}

func (m *mockApp) SetDefault(name string) error {
	m.defaults = append(m.defaults, name)
	return nil
}

func execute(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_ServiceOperations(t *testing.T) {
	tests := []struct {
		args []string
		want runCall
	}{
		{
			args: []string{"launch"},
			want: runCall{op: app.OpLaunch},
		},
		{
			args: []string{"-e", "qa", "launch", "web", "db"},
			want: runCall{op: app.OpLaunch, name: "qa", services: []string{"web", "db"}},
		},
		{
			args: []string{"start", "web"},
			want: runCall{op: app.OpStart, services: []string{"web"}},
		},
		{
			args: []string{"stop", "--fail-fast", "--environment", "review"},
			want: runCall{op: app.OpStop, name: "review", opts: app.RunOptions{FailFast: true}},
		},
		{
			args: []string{"restart"},
			want: runCall{op: app.OpRestart},
		},
		{
			args: []string{"kill", "worker"},
			want: runCall{op: app.OpKill, services: []string{"worker"}},
		},
		{
			args: []string{"rm"},
			want: runCall{op: app.OpRm},
		},
		{
			args: []string{"pull", "db"},
			want: runCall{op: app.OpPull, services: []string{"db"}},
		},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			mock := &mockApp{}
			_, err := execute(t, commands.New(mock), tt.args...)
			require.NoError(t, err)
			require.Len(t, mock.runs, 1)
			assert.Equal(t, tt.want, mock.runs[0])
		})
	}
}

func TestCommands_LaunchHasNoFailFast(t *testing.T) {
	_, err := execute(t, commands.New(&mockApp{}), "launch", "--fail-fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestCommands_RunFailure(t *testing.T) {
	mock := &mockApp{runErr: errors.New("simulated error")}

	_, err := execute(t, commands.New(mock), "stop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_PS(t *testing.T) {
	mock := &mockApp{services: []domain.RunningService{
		{ID: "0123456789ab", Name: "web", Image: "acme/web:canary", Status: "Up 2 minutes", State: "running"},
	}}

	out, err := execute(t, commands.New(mock), "ps")
	require.NoError(t, err)
	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, "0123456789ab")
	assert.Contains(t, out, "acme/web:canary")
	assert.Contains(t, out, "Up 2 minutes")
}

func TestCommands_PSEmpty(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{defaultName: "staging"}), "ps")
	require.NoError(t, err)
	assert.Equal(t, "No services in staging\n", out)
}

func TestCommands_PSJSON(t *testing.T) {
	mock := &mockApp{services: []domain.RunningService{
		{ID: "abc", Name: "db", Image: "postgres:13", Status: "Exited (0)", State: "exited"},
	}}

	out, err := execute(t, commands.New(mock), "ps", "--json")
	require.NoError(t, err)

	var got []domain.RunningService
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, mock.services, got)
}

func TestCommands_Port(t *testing.T) {
	mock := &mockApp{port: 32768}

	out, err := execute(t, commands.New(mock), "-e", "qa", "port", "web", "80")
	require.NoError(t, err)
	assert.Equal(t, "32768\n", out)
	assert.Equal(t, []any{"qa", "web", 80}, mock.portArgs)
}

func TestCommands_PortErrors(t *testing.T) {
	_, err := execute(t, commands.New(&mockApp{}), "port", "web", "http")
	assert.ErrorIs(t, err, domain.ErrInvalidPort)

	_, err = execute(t, commands.New(&mockApp{}), "port", "web", "80")
	assert.ErrorIs(t, err, domain.ErrServiceNotRunning)

	_, err = execute(t, commands.New(&mockApp{}), "port", "web")
	assert.Error(t, err)
}

func TestCommands_Destroy(t *testing.T) {
	t.Run("force skips the prompt", func(t *testing.T) {
		mock := &mockApp{}
		out, err := execute(t, commands.New(mock, commands.WithInteractive(false)), "destroy", "-f", "-e", "qa")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, []string{"qa"}, mock.destroyed)
	})

	t.Run("non interactive refuses without force", func(t *testing.T) {
		mock := &mockApp{}
		_, err := execute(t, commands.New(mock, commands.WithInteractive(false)), "destroy")
		assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
		assert.Empty(t, mock.destroyed)
	})

	t.Run("confirmed", func(t *testing.T) {
		mock := &mockApp{}
		cli := commands.New(mock, commands.WithInteractive(true))
		cli.SetInput(strings.NewReader("y\n"))

		out, err := execute(t, cli, "destroy")
		require.NoError(t, err)
		assert.Contains(t, out, "Destroy dev and all its containers? [y/N]")
		assert.Equal(t, []string{"dev"}, mock.destroyed)
	})

	t.Run("declined", func(t *testing.T) {
		mock := &mockApp{}
		cli := commands.New(mock, commands.WithInteractive(true))
		cli.SetInput(strings.NewReader("n\n"))

		out, err := execute(t, cli, "destroy")
		require.NoError(t, err)
		assert.Contains(t, out, "Aborted")
		assert.Empty(t, mock.destroyed)
	})

	t.Run("end of input declines", func(t *testing.T) {
		mock := &mockApp{}
		cli := commands.New(mock, commands.WithInteractive(true))
		cli.SetInput(strings.NewReader(""))

		_, err := execute(t, cli, "destroy")
		require.NoError(t, err)
		assert.Empty(t, mock.destroyed)
	})
}

func TestCommands_Status(t *testing.T) {
	mock := &mockApp{statuses: []app.EnvironmentStatus{
		{Name: "dev", Default: true, State: "launched", Services: []domain.RunningService{
			{Name: "web", State: "running"},
			{Name: "db", State: "exited"},
		}},
		{Name: "qa", State: "stopped", Services: []domain.RunningService{{Name: "db", State: "exited"}}},
	}}

	out, err := execute(t, commands.New(mock), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "NAVY")
	assert.Contains(t, out, "dev (default)")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "qa")
	assert.Contains(t, out, "0/1")
}

func TestCommands_StatusEmpty(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "status")
	require.NoError(t, err)
	assert.Equal(t, "There are no launched navies\n", out)
}

func TestCommands_StatusJSON(t *testing.T) {
	mock := &mockApp{statuses: []app.EnvironmentStatus{
		{Name: "dev", Default: true, State: "launched", Services: []domain.RunningService{{Name: "web", State: "running"}}},
	}}

	out, err := execute(t, commands.New(mock), "status", "--json")
	require.NoError(t, err)

	var got []app.EnvironmentStatus
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, mock.statuses, got)
}

func TestCommands_SetDefault(t *testing.T) {
	mock := &mockApp{}

	_, err := execute(t, commands.New(mock), "set-default", "staging")
	require.NoError(t, err)
	_, err = execute(t, commands.New(mock), "set-default")
	require.NoError(t, err)

	assert.Equal(t, []string{"staging", domain.DefaultEnvironmentName}, mock.defaults)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, commands.New(&mockApp{}), "version")
	require.NoError(t, err)
	assert.Equal(t, "navy version "+build.Version+"\n", out)
}

func TestCommands_Help(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	for _, name := range []string{
		"launch", "start", "stop", "restart", "kill", "rm", "pull",
		"ps", "port", "destroy", "status", "set-default", "version",
	} {
		assert.Contains(t, buf.String(), name)
	}
}
