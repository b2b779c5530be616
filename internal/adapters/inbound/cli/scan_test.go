package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embercheck/embercheck/internal/adapters/inbound/cli"
)

const violatingComponent = `
import * as _ from 'lodash';

export default class Profile extends Component {
  save() {
    this.sendAction('save');
  }
}
`

const cleanComponent = `
import debounce from 'lodash/debounce';

export default class UserProfile extends Component {
  save() {
    this.args.onSave();
  }
}
`

func writeTarget(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func runCommand(args ...string) (string, error) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCommand_JSON(t *testing.T) {
	root := writeTarget(t, map[string]string{"app/profile.js": violatingComponent})

	out, err := runCommand("scan", root, "--json")
	// The fixture has a critical finding, so the command reports failure
	// after printing the report.
	assert.Error(t, err)
	assert.Contains(t, out, `"findings"`)
	assert.Contains(t, out, `"bundling/no-namespace-utility-import"`)
	assert.Contains(t, out, `"components/no-send-action"`)
}

func TestScanCommand_CleanTargetPasses(t *testing.T) {
	root := writeTarget(t, map[string]string{"app/user.js": cleanComponent})

	out, err := runCommand("scan", root)
	assert.NoError(t, err)
	assert.Contains(t, out, "No findings")
}

func TestScanCommand_FailOnThreshold(t *testing.T) {
	// Only a high finding; default threshold (critical) passes, high fails.
	root := writeTarget(t, map[string]string{"app/clock.js": `
import moment from 'moment';

export default class ClockDisplay extends Component {}
`})

	_, err := runCommand("scan", root, "--json")
	assert.NoError(t, err)

	_, err = runCommand("scan", root, "--json", "--fail-on", "high")
	assert.Error(t, err)
}

func TestScanCommand_ProjectConfigFailOn(t *testing.T) {
	// One medium finding only (legacy route transitionTo).
	legacyRoute := `
export default class CheckoutRoute extends Route {
  afterModel() {
    this.transitionTo('checkout.summary');
  }
}
`

	root := writeTarget(t, map[string]string{"app/routes/checkout.js": legacyRoute})
	_, err := runCommand("scan", root)
	assert.NoError(t, err)

	// fail_on in .embercheck.yaml lowers the threshold for the whole target.
	root = writeTarget(t, map[string]string{
		"app/routes/checkout.js": legacyRoute,
		".embercheck.yaml":       "fail_on: medium\n",
	})
	_, err = runCommand("scan", root)
	assert.Error(t, err)

	// An explicit flag overrides the project config.
	_, err = runCommand("scan", root, "--fail-on", "critical")
	assert.NoError(t, err)
}

func TestScanCommand_InvalidFailOn(t *testing.T) {
	_, err := runCommand("scan", t.TempDir(), "--fail-on", "severe")
	assert.ErrorContains(t, err, "invalid --fail-on")
}

func TestScanCommand_SARIFOutput(t *testing.T) {
	root := writeTarget(t, map[string]string{"app/user.js": cleanComponent})
	sarifPath := filepath.Join(t.TempDir(), "out.sarif")

	_, err := runCommand("scan", root, "--sarif", sarifPath)
	require.NoError(t, err)

	data, err := os.ReadFile(sarifPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "2.1.0"`)
	assert.Contains(t, string(data), `"embercheck"`)
}

func TestScanCommand_DefaultTUI(t *testing.T) {
	root := writeTarget(t, map[string]string{"app/profile.js": violatingComponent})

	out, err := runCommand("scan", root, "--fail-on", "critical")
	assert.Error(t, err)
	assert.Contains(t, out, "embercheck")
	assert.Contains(t, out, "no-send-action")
}

func TestScanCommand_History(t *testing.T) {
	root := writeTarget(t, map[string]string{"app/user.js": cleanComponent})

	// First scan records an entry; --history then lists it.
	_, err := runCommand("scan", root)
	require.NoError(t, err)

	out, err := runCommand("scan", root, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "0 findings")
}
