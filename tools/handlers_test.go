package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/jenkins-mcp/jenkins"
)

var sampleBuilds = jenkins.JobBuilds{
	Name: "main",
	Builds: []jenkins.BuildRef{
		{Number: 42, URL: "http://jenkins/job/team/job/api/job/main/42/", Color: "blue", Description: "release", Result: "SUCCESS"},
		{Number: 41, URL: "http://jenkins/job/team/job/api/job/main/41/", Color: "red", Result: "FAILURE"},
	},
}

func TestListBuilds(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/job/main/api/json", sampleBuilds)
	s := newTestServer(t, f, Options{})

	for _, name := range []string{ToolListBuilds, ToolListJobs} {
		t.Run(name, func(t *testing.T) {
			text, isErr := call(t, s, name, map[string]any{
				"folderName": "team",
				"repoName":   "api",
				"branchName": "main",
			})
			require.False(t, isErr, text)
			assert.Contains(t, text, "📂 **Builds in team/api/main** (2 found):")
			assert.Contains(t, text, "1. ✅ **42**\n   🔗 http://jenkins/job/team/job/api/job/main/42/\n   📝 release\n")
			assert.Contains(t, text, "2. ❌ **41**")
		})
	}
}

func TestListBuildsEscapesBranch(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/job/feature%2Flogin/api/json", sampleBuilds)
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"branchName": "feature/login",
	})
	require.False(t, isErr, text)
	assert.Equal(t, "/job/team/job/api/job/feature%2Flogin/api/json", f.last.path)
}

func TestListBuildsFilter(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/api/json", sampleBuilds)
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"filter":     `Result == "FAILURE"`,
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "(1 found)")
	assert.Contains(t, text, "**41**")
	assert.NotContains(t, text, "**42**")

	text, isErr = call(t, s, ToolListBuilds, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"filter":     `Number > 100`,
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "No builds in team/api match filter")
}

func TestListBuildsEmpty(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/api/json", jenkins.JobBuilds{})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{"folderName": "team", "repoName": "api"})
	assert.False(t, isErr)
	assert.Contains(t, text, "📂 **No jobs found in team/api for "+f.server.URL+"/job/team/job/api**")
}

func TestListBuildsNotFound(t *testing.T) {
	s := newTestServer(t, newFakeJenkins(t), Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{"folderName": "team", "repoName": "missing"})
	assert.True(t, isErr)
	assert.Contains(t, text, "(not found error)")
	assert.Contains(t, text, "1. Verify the path team/missing exists in Jenkins\n")
}

func TestListBuildsRequiresFolder(t *testing.T) {
	s := newTestServer(t, newFakeJenkins(t), Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{"folderName": "  ", "repoName": "api"})
	assert.True(t, isErr)
	assert.Contains(t, text, "(invalid params error)")
	assert.Contains(t, text, `1. argument "folderName" must not be empty`)
}

func TestListBuildsNonJSONBody(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/team/job/api/api/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login</html>"))
	})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{"folderName": "team", "repoName": "api"})
	assert.True(t, isErr)
	assert.Contains(t, text, "(unknown error)")
	assert.Contains(t, text, "1. Jenkins returned a non-JSON page")
	assert.Contains(t, text, "2. Verify the path team/api exists in Jenkins")
	assert.NotContains(t, text, "Invalid parameters")
}

func TestListBuildsRunningFilter(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/api/json", jenkins.JobBuilds{Builds: []jenkins.BuildRef{
		{Number: 3, Color: "blue_anime", Building: true},
		{Number: 2, Color: "red"},
	}})
	s := newTestServer(t, f, Options{FilterCacheSize: 10})

	text, isErr := call(t, s, ToolListBuilds, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"filter":     "isRunning(Color)",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "(1 found)")
	assert.Contains(t, text, "**3**")

	text, isErr = call(t, s, ToolListBuilds, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"filter":     "isFailed(Color)",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "**2**")
	assert.NotContains(t, text, "**3**")
}

func TestBuildWithParameters(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/team/job/api/job/main/buildWithParameters", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://jenkins/queue/item/7/")
		w.WriteHeader(http.StatusCreated)
	})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolBuildWithParameters, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"branchName": "main",
		"params":     map[string]any{"ENV": "staging", "VERSION": "1.2.3", "DRY_RUN": true},
	})
	require.False(t, isErr, text)

	assert.Equal(t, http.MethodPost, f.last.method)
	assert.Equal(t, map[string]string{"ENV": "staging", "VERSION": "1.2.3", "DRY_RUN": "true"}, f.last.query)

	assert.Contains(t, text, "🚀 **Build Triggered Successfully!**")
	assert.Contains(t, text, "📂 **Job:** team/api/main")
	assert.Contains(t, text, "📡 **Status Code:** 201")
	assert.Contains(t, text, "http://jenkins/queue/item/7/")
	assert.Contains(t, text, "   • DRY_RUN: true\n   • ENV: staging\n   • VERSION: 1.2.3\n")
	assert.Contains(t, text, "💡 **Next Steps:**")
}

func TestBuildWithParametersRequiresParams(t *testing.T) {
	f := newFakeJenkins(t)
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolBuildWithParameters, map[string]any{"folderName": "team", "repoName": "api"})
	assert.True(t, isErr)
	assert.Contains(t, text, "(invalid params error)")
	assert.Contains(t, text, `"params"`)
	assert.Empty(t, f.last.method)

	for _, tool := range s.Tools() {
		if tool.Name == ToolBuildWithParameters {
			assert.Contains(t, tool.InputSchema.Required, "params")
		}
	}
}

func TestBuildWithParametersFailure(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/team/job/api/buildWithParameters", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolBuildWithParameters, map[string]any{
		"folderName": "team",
		"repoName":   "api",
		"params":     map[string]any{"ENV": "nowhere"},
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "(invalid params error)")
	assert.Contains(t, text, "1. Verify the job team/api exists and supports parameterized builds\n")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(text), "Check if the provided parameters match the job's parameter definitions"))
}

func TestGetJobInfo(t *testing.T) {
	buildable := true
	info := jenkins.JobInfo{
		Name:        "api",
		FullName:    "team/api",
		URL:         "http://jenkins/job/team/job/api/",
		Description: "API service",
		Color:       "blue",
		Buildable:   &buildable,
		LastBuild:   &jenkins.BuildRef{Number: 9, URL: "http://jenkins/job/team/job/api/9/"},
		Builds: []jenkins.BuildRef{
			{Number: 9}, {Number: 8}, {Number: 7}, {Number: 6}, {Number: 5}, {Number: 4}, {Number: 3},
		},
		HealthReport: []jenkins.HealthReport{{Description: "Build stability", Score: 80}},
		Property: []jenkins.ParametersHolder{{
			Class: "hudson.model.ParametersDefinitionProperty",
			ParameterDefinitions: []jenkins.ParameterDefinition{{
				Name:                  "ENV",
				Type:                  "StringParameterDefinition",
				Description:           "Target environment",
				DefaultParameterValue: &jenkins.ParameterValue{Value: "dev"},
			}},
		}},
	}

	f := newFakeJenkins(t)
	f.json("/job/team/job/api/api/json", info)
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolGetJobInfo, map[string]any{"fullname": "team/api"})
	require.False(t, isErr, text)
	assert.Equal(t, "1", f.last.query["depth"])

	assert.Contains(t, text, "📋 **Job Information: team/api**")
	assert.Contains(t, text, "📝 **Description:** API service")
	assert.Contains(t, text, "🎯 **Status:** ✅ blue")
	assert.Contains(t, text, "🔨 **Buildable:** Yes")
	assert.Contains(t, text, "📊 **Recent Builds** (7 shown):")
	assert.Contains(t, text, "   5. #5 - ")
	assert.NotContains(t, text, "#4 - ")
	assert.Contains(t, text, "... and 2 more builds")
	assert.Contains(t, text, "💚 Build stability (Score: 80%)")
	assert.Contains(t, text, "   • ENV: StringParameterDefinition (default: dev)\n     Target environment\n")
}

func TestGetJobInfoRawJSON(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/team/job/api/api/json", jenkins.JobInfo{Name: "api", URL: "http://jenkins/job/team/job/api/"})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolGetJobInfo, map[string]any{"fullname": "team/api", "rawJson": true})
	require.False(t, isErr, text)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, "api", decoded["name"])
}

func TestGetJobInfoEmptyName(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/job/ghost/api/json", map[string]any{})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolGetJobInfo, map[string]any{"fullname": "ghost"})
	assert.False(t, isErr)
	assert.Contains(t, text, "📂 **Job not found: ghost**")
	assert.Contains(t, text, "🌐 **Attempted URL:** "+f.server.URL+"/job/ghost/api/json?depth=1")
}

func TestGetJobInfoSpaceHints(t *testing.T) {
	s := newTestServer(t, newFakeJenkins(t), Options{})

	text, isErr := call(t, s, ToolGetJobInfo, map[string]any{"fullname": "My Folder/app"})
	assert.True(t, isErr)
	assert.Contains(t, text, "(not found error)")
	assert.Contains(t, text, "/job/My%20Folder/job/app/api/json?depth=1")
	assert.Contains(t, text, "Job name contains spaces")
}

func TestGetJobLogs(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/team/job/api/job/main/lastBuild/consoleText", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("line 1\nline 2\nline 3\nline 4\n"))
	})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolGetJobLogs, map[string]any{
		"fullname":    "team/api/main",
		"buildNumber": "lastBuild",
	})
	require.False(t, isErr, text)
	assert.Equal(t, "📜 **Console Log for team/api/main #lastBuild**\n\n```\nline 1\nline 2\nline 3\nline 4\n\n```", text)

	text, isErr = call(t, s, ToolGetJobLogs, map[string]any{
		"fullname":    "team/api/main",
		"buildNumber": "lastBuild",
		"ntail":       float64(2),
	})
	require.False(t, isErr, text)
	assert.Equal(t, "📜 **Console Log for team/api/main #lastBuild** (last 2 lines)\n\n```\nline 3\nline 4\n```", text)
}

func TestGetJobLogsInvalidTail(t *testing.T) {
	s := newTestServer(t, newFakeJenkins(t), Options{})

	text, isErr := call(t, s, ToolGetJobLogs, map[string]any{
		"fullname":    "team/api",
		"buildNumber": "3",
		"ntail":       float64(-1),
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "(invalid params error)")
	assert.Contains(t, text, "non-negative")
}

func TestGetJobLogsNotFound(t *testing.T) {
	s := newTestServer(t, newFakeJenkins(t), Options{})

	text, isErr := call(t, s, ToolGetJobLogs, map[string]any{"fullname": "team/api", "buildNumber": "3"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Attempted path: /job/team/job/api/3/consoleText")
	assert.Contains(t, text, "Constructed URL: ")
}

func TestTailLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "fewer lines than n", text: "a\nb", n: 5, want: "a\nb"},
		{name: "trailing newline ignored", text: "a\nb\nc\n", n: 2, want: "b\nc"},
		{name: "exact", text: "a\nb", n: 2, want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tailLines(tt.text, tt.n))
		})
	}
}

func TestFetchFromJenkins(t *testing.T) {
	f := newFakeJenkins(t)
	f.json("/queue/api/json", map[string]any{"items": []any{}, "url": "http://jenkins/queue/?a=1&b=2"})
	f.handle("/job/team/config.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<project/>"))
	})
	s := newTestServer(t, f, Options{})

	t.Run("json", func(t *testing.T) {
		text, isErr := call(t, s, ToolFetchFromJenkins, map[string]any{"jenkinsUrl": "/queue", "getJson": true})
		require.False(t, isErr, text)
		assert.Contains(t, text, "🔗 **URL:** "+f.server.URL+"/queue/api/json")
		assert.Contains(t, text, "📄 **Format:** JSON")
		assert.Contains(t, text, "```json\n{\n  \"items\": [],\n  \"url\": \"http://jenkins/queue/?a=1&b=2\"\n}\n```")
	})

	t.Run("raw absolute url", func(t *testing.T) {
		text, isErr := call(t, s, ToolFetchFromJenkins, map[string]any{
			"jenkinsUrl": f.server.URL + "/job/team/config.xml",
			"getJson":    false,
		})
		require.False(t, isErr, text)
		assert.Contains(t, text, "📄 **Format:** Raw")
		assert.Contains(t, text, "```\n<project/>\n```")
	})

	t.Run("missing getJson", func(t *testing.T) {
		_, isErr := call(t, s, ToolFetchFromJenkins, map[string]any{"jenkinsUrl": "/queue"})
		assert.True(t, isErr)
	})
}

func TestGenericToolsRefuseForeignHosts(t *testing.T) {
	var foreignAuth []string
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignAuth = append(foreignAuth, r.Header.Get("Authorization"))
	}))
	t.Cleanup(foreign.Close)

	f := newFakeJenkins(t)
	s := newTestServer(t, f, Options{})

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{
			name: "fetch",
			tool: ToolFetchFromJenkins,
			args: map[string]any{"jenkinsUrl": foreign.URL + "/steal", "getJson": false},
		},
		{
			name: "fetch json",
			tool: ToolFetchFromJenkins,
			args: map[string]any{"jenkinsUrl": foreign.URL + "/steal", "getJson": true},
		},
		{
			name: "invoke",
			tool: ToolInvokeRequest,
			args: map[string]any{"jenkinsUrl": foreign.URL + "/steal", "method": "POST"},
		},
		{
			name: "scheme relative",
			tool: ToolInvokeRequest,
			args: map[string]any{"jenkinsUrl": "//" + strings.TrimPrefix(foreign.URL, "http://") + "/steal", "method": "GET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, s, tt.tool, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, "(invalid params error)")
			assert.Contains(t, text, "other hosts are refused")
		})
	}

	assert.Empty(t, foreignAuth)
}

func TestInvokeRequest(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/team/job/api/disable", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s := newTestServer(t, f, Options{})

	text, isErr := call(t, s, ToolInvokeRequest, map[string]any{
		"jenkinsUrl": "job/team/job/api/disable",
		"method":     "post",
		"params":     map[string]any{"reason": "maintenance"},
	})
	require.False(t, isErr, text)
	assert.Equal(t, http.MethodPost, f.last.method)
	assert.Equal(t, "maintenance", f.last.query["reason"])
	assert.Contains(t, text, "📡 **Method:** POST")
	assert.Contains(t, text, "📊 **Status:** 200")
	assert.Contains(t, text, "   • reason: maintenance\n")
	assert.Contains(t, text, "{\n  \"ok\": true\n}")
}

func TestInvokeRequestFailures(t *testing.T) {
	f := newFakeJenkins(t)
	f.handle("/job/locked/doDelete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	s := newTestServer(t, f, Options{})

	t.Run("forbidden", func(t *testing.T) {
		text, isErr := call(t, s, ToolInvokeRequest, map[string]any{"jenkinsUrl": "/job/locked/doDelete", "method": "PUT"})
		assert.True(t, isErr)
		assert.Contains(t, text, "(permission error)")
		assert.Contains(t, text, "supports PUT requests")
		assert.Contains(t, text, "Ensure required parameters are provided for PUT operations")
	})

	t.Run("unsupported method", func(t *testing.T) {
		text, isErr := call(t, s, ToolInvokeRequest, map[string]any{"jenkinsUrl": "/job/locked/doDelete", "method": "PATCH"})
		assert.True(t, isErr)
		assert.Contains(t, text, "(invalid params error)")
		assert.NotContains(t, text, "Ensure required parameters")
	})
}
