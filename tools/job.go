package tools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/s0up4200/jenkins-mcp/diagnose"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

const recentBuildsShown = 5

var errFullnameEmpty = errors.New(`argument "fullname" must name a job`)

// splitFullname returns the non-empty segments of a slash separated job name
func splitFullname(fullname string) []string {
	var parts []string
	for _, p := range strings.Split(fullname, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// registerGetJobInfo registers the get-job-info tool
func (s *Server) registerGetJobInfo() {
	tool := mcp.NewTool(ToolGetJobInfo,
		mcp.WithDescription(s.describe(ToolGetJobInfo)),
		mcp.WithString("fullname",
			mcp.Required(),
			mcp.Description(fullnameDesc),
		),
		mcp.WithBoolean("rawJson",
			mcp.Description(rawJSONDescription),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fullname, err := requireNonEmpty(request, "fullname")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		if len(splitFullname(fullname)) == 0 {
			return s.invalidArgs(ctx, errFullnameEmpty), nil
		}
		rawJSON := request.GetBool("rawJson", false)

		apiURL := jenkins.JSONURL(s.client.JobPathURL(fullname)) + "?depth=1"

		resp, err := s.client.Get(ctx, apiURL, nil)
		if err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				d.Prepend(
					fmt.Sprintf("Verify the job path '%s' exists in Jenkins", fullname),
					"Check if you have permission to view this job",
					"Ensure the job name format is correct (use / to separate folder levels)",
					fmt.Sprintf("Constructed URL: %s", apiURL),
					"Try using the search-jobs tool first to find the correct job path",
				)
				if strings.Contains(fullname, " ") {
					d.Append(
						"Job name contains spaces - URL encoding is applied automatically",
						"Try searching for the job first to get the exact path",
					)
				}
			}), nil
		}

		var info jenkins.JobInfo
		if err := resp.Decode(&info); err != nil || info.Name == "" {
			return mcp.NewToolResultText(fmt.Sprintf(
				"📂 **Job not found: %s**\n\n"+
					"💡 **This could mean:**\n"+
					"• The job path doesn't exist\n"+
					"• You may not have permission to view this job\n"+
					"• The job name format is incorrect\n\n"+
					"🔍 **Try using search-jobs to find available jobs**\n"+
					"🌐 **Attempted URL:** %s",
				fullname, apiURL,
			)), nil
		}

		if rawJSON {
			return jsonResult(resp.Data()), nil
		}

		return mcp.NewToolResultText(formatJobInfo(fullname, &info)), nil
	})
}

func formatJobInfo(fullname string, info *jenkins.JobInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 **Job Information: %s**\n\n", fullname)

	fmt.Fprintf(&sb, "🏷️  **Name:** %s\n", info.Name)
	fmt.Fprintf(&sb, "🔗 **URL:** %s\n", info.URL)
	fullName := info.FullName
	if fullName == "" {
		fullName = fullname
	}
	fmt.Fprintf(&sb, "📂 **Full Name:** %s\n", fullName)

	if info.Description != "" {
		fmt.Fprintf(&sb, "📝 **Description:** %s\n", info.Description)
	}
	if info.Color != "" {
		fmt.Fprintf(&sb, "🎯 **Status:** %s %s\n", statusIcon(info.Color, true, true), info.Color)
	}
	if info.Buildable != nil {
		buildable := "No"
		if *info.Buildable {
			buildable = "Yes"
		}
		fmt.Fprintf(&sb, "🔨 **Buildable:** %s\n", buildable)
	}

	writeBuildRef(&sb, "🏗️  **Last Build:**", info.LastBuild)
	writeBuildRef(&sb, "✅ **Last Successful Build:**", info.LastSuccessfulBuild)
	writeBuildRef(&sb, "❌ **Last Failed Build:**", info.LastFailedBuild)

	if len(info.Builds) > 0 {
		fmt.Fprintf(&sb, "\n📊 **Recent Builds** (%d shown):\n", len(info.Builds))
		for i, build := range info.Builds {
			if i == recentBuildsShown {
				break
			}
			fmt.Fprintf(&sb, "   %d. #%d - %s\n", i+1, build.Number, build.URL)
		}
		if len(info.Builds) > recentBuildsShown {
			fmt.Fprintf(&sb, "   ... and %d more builds\n", len(info.Builds)-recentBuildsShown)
		}
	}

	if len(info.Property) > 0 {
		fmt.Fprintf(&sb, "\n⚙️  **Properties:** %d configured\n", len(info.Property))
	}

	writeProjects(&sb, "⬇️  **Downstream Projects:**", info.DownstreamProjects)
	writeProjects(&sb, "⬆️  **Upstream Projects:**", info.UpstreamProjects)

	if len(info.HealthReport) > 0 {
		sb.WriteString("\n🏥 **Health Reports:**\n")
		for _, report := range info.HealthReport {
			fmt.Fprintf(&sb, "   %s %s (Score: %d%%)\n", healthIcon(report.Score), report.Description, report.Score)
		}
	}

	if defs := info.ParameterDefinitions(); len(defs) > 0 {
		sb.WriteString("\n🔧 **Build Parameters:**\n")
		for _, def := range defs {
			paramType := def.Type
			if paramType == "" {
				paramType = "String"
			}
			fmt.Fprintf(&sb, "   • %s: %s", def.Name, paramType)
			if def.DefaultParameterValue != nil && def.DefaultParameterValue.Value != nil {
				fmt.Fprintf(&sb, " (default: %v)", def.DefaultParameterValue.Value)
			}
			sb.WriteString("\n")
			if def.Description != "" {
				fmt.Fprintf(&sb, "     %s\n", def.Description)
			}
		}
	}

	return sb.String()
}

func writeBuildRef(sb *strings.Builder, title string, build *jenkins.BuildRef) {
	if build == nil {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	fmt.Fprintf(sb, "   • Number: #%d\n", build.Number)
	fmt.Fprintf(sb, "   • URL: %s\n", build.URL)
}

func writeProjects(sb *strings.Builder, title string, projects []jenkins.ProjectRef) {
	if len(projects) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	for _, p := range projects {
		fmt.Fprintf(sb, "   • %s (%s)\n", p.Name, p.URL)
	}
}

// registerGetJobLogs registers the get-job-logs tool
func (s *Server) registerGetJobLogs() {
	tool := mcp.NewTool(ToolGetJobLogs,
		mcp.WithDescription(s.describe(ToolGetJobLogs)),
		mcp.WithString("fullname",
			mcp.Required(),
			mcp.Description(fullnameDesc),
		),
		mcp.WithString("buildNumber",
			mcp.Required(),
			mcp.Description("The build number to get the logs for. You can use 'lastBuild' to get the latest build."),
		),
		mcp.WithNumber("ntail",
			mcp.Description("The number of lines to get from the end of the logs"),
		),
	)

	s.addTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fullname, err := requireNonEmpty(request, "fullname")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		parts := splitFullname(fullname)
		if len(parts) == 0 {
			return s.invalidArgs(ctx, errFullnameEmpty), nil
		}
		buildNumber, err := requireNonEmpty(request, "buildNumber")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}
		ntail, err := optionalInt(request, "ntail")
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}

		logPath := jenkins.JobPath(parts...) + "/" + url.PathEscape(buildNumber) + "/consoleText"
		logURL, err := s.client.Resolve(logPath)
		if err != nil {
			return s.invalidArgs(ctx, err), nil
		}

		resp, err := s.client.Get(ctx, logURL, nil)
		if err != nil {
			return s.failure(ctx, err, func(d *diagnose.Diagnosis) {
				d.Prepend(
					fmt.Sprintf("Verify the job '%s' and build number '%s' exist in Jenkins", fullname, buildNumber),
					"Verify the folder name, repository name, and branch name are correct",
					"Check if the job exists in Jenkins",
					"Ensure proper case sensitivity in job names",
					"Use the search-jobs tool to find available jobs",
					fmt.Sprintf("Attempted path: %s", logPath),
					fmt.Sprintf("Constructed URL: %s", logURL),
				)
			}), nil
		}

		logData := string(resp.Body)
		if ntail > 0 {
			logData = tailLines(logData, ntail)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "📜 **Console Log for %s #%s**", fullname, buildNumber)
		if ntail > 0 {
			fmt.Fprintf(&sb, " (last %d lines)", ntail)
		}
		sb.WriteString("\n\n```\n")
		sb.WriteString(logData)
		sb.WriteString("\n```")

		return mcp.NewToolResultText(sb.String()), nil
	})
}

// tailLines returns the last n lines of text. A trailing newline does not
// count as an extra empty line.
func tailLines(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
