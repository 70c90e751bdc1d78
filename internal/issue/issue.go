// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PythonNotFoundId Id = iota + 1
	ManifestNotFoundId
	VenvNotFoundId
	VenvCreateFailedId
	PipUpgradeFailedId
	InstallFailedId
	LaunchFailedId
	ConfigLoadFailedId
	DataDirNotFoundId
	HookFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pythonNotFoundIssue = &Issue{
		id: PythonNotFoundId,
		mdMsg: `
# Python was not found!

straycat needs a Python interpreter on your PATH to create the virtual
environment and install dependencies.

## Things you can try:
- Install Python 3 from your package manager or https://www.python.org/downloads/
- Make sure the installer added Python to your PATH (on Windows, tick
  "Add python.exe to PATH")
- Point straycat at a specific interpreter:
~~~
$ straycat setup --python /usr/local/bin/python3.12
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No requirements manifest found!

Dependency installation needs a requirements file, and none exists at the
expected location.

## Things you can try:
- Scaffold a starter manifest alongside the app:
~~~
$ straycat init
~~~

- Or point setup at the manifest explicitly:
~~~
$ straycat setup --requirements path/to/requirements.txt
~~~

## Example requirements.txt:
~~~
streamlit==1.40.0
pandas==2.2.3
~~~`,
	}

	venvNotFoundIssue = &Issue{
		id: VenvNotFoundId,
		mdMsg: `
# Virtual environment not found — run setup first!

The launch procedure needs the virtual environment that setup creates, and it
does not exist yet.

## Things you can try:
- Bootstrap the environment:
~~~
$ straycat setup
~~~

- Then launch the app:
~~~
$ straycat run
~~~`,
	}

	venvCreateFailedIssue = &Issue{
		id: VenvCreateFailedId,
		mdMsg: `
# Creating the virtual environment failed!

'python -m venv' exited with a non-zero status.

## Things you can try:
- On Debian/Ubuntu, install the venv module: 'sudo apt install python3-venv'
- Check that the target directory is writable
- Remove a half-created environment directory and retry:
~~~
$ rm -rf .venv && straycat setup
~~~`,
	}

	pipUpgradeFailedIssue = &Issue{
		id: PipUpgradeFailedId,
		mdMsg: `
# Upgrading pip failed!

'python -m pip install --upgrade pip' exited with a non-zero status.

## Things you can try:
- Check your network connection and proxy settings
- Re-run with verbose output to see pip's own diagnostics:
~~~
$ straycat setup -v
~~~`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Installing dependencies failed!

'pip install -r requirements.txt' exited with a non-zero status. The
environment may hold a partial package set; setup does not roll back.

## Things you can try:
- Read pip's error output above — a single pinned version is usually the culprit
- Re-run setup after fixing the manifest (already-satisfied packages are skipped)
- Write a setup log for later inspection:
~~~
$ straycat setup --log-file setup.log
~~~`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Launching the app failed!

The serving command exited with a non-zero status.

## Things you can try:
- Check that streamlit is installed in the environment: 'straycat doctor'
- Re-run setup if the manifest changed:
~~~
$ straycat setup --force
~~~
- Launch with a different port if the default one is taken:
~~~
$ straycat run --port 8502
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded!

There was an error loading or validating your straycat configuration.

## Configuration file locations:
- Project: ./straycat.cue
- Linux: ~/.config/straycat/config.cue
- macOS: ~/Library/Application Support/straycat/config.cue
- Windows: %APPDATA%\straycat\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
venv_dir:     ".venv"
requirements: "requirements.txt"
entrypoint:   "main.py"

serve: {
  port: 8501
}
~~~`,
	}

	dataDirNotFoundIssue = &Issue{
		id: DataDirNotFoundId,
		mdMsg: `
# Data directory not found!

The costing data directory does not exist, so there are no CSV sheets to work
with.

## Things you can try:
- Scaffold the data directory with seeded sheets:
~~~
$ straycat init
~~~

- Or point at an existing data directory:
~~~
$ straycat serve --data-dir path/to/data
~~~

- Or run from the project directory that holds the sheets:
~~~
$ straycat -C path/to/project price 草莓蛋糕=1
~~~`,
	}

	hookFailedIssue = &Issue{
		id: HookFailedId,
		mdMsg: `
# A setup hook failed!

A hook script configured in straycat.cue exited with a non-zero status, so
setup stopped.

## Things you can try:
- Run the hook snippet by hand in the built-in shell:
~~~
$ straycat exec --virtual -- 'your hook command'
~~~
- Fix or remove the hook in straycat.cue`,
	}

	issues = map[Id]*Issue{
		pythonNotFoundIssue.Id():   pythonNotFoundIssue,
		manifestNotFoundIssue.Id(): manifestNotFoundIssue,
		venvNotFoundIssue.Id():     venvNotFoundIssue,
		venvCreateFailedIssue.Id(): venvCreateFailedIssue,
		pipUpgradeFailedIssue.Id(): pipUpgradeFailedIssue,
		installFailedIssue.Id():    installFailedIssue,
		launchFailedIssue.Id():     launchFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		dataDirNotFoundIssue.Id():  dataDirNotFoundIssue,
		hookFailedIssue.Id():       hookFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
