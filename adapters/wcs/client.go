package wcs

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"
	"github.com/nasa/vsm/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	commandPath  = "/command"
	commandField = "edge_command"

	camerasCommand = "doug.scene get -cameras"
	viewsCommand   = "doug.display get -views"
	fpsCommand     = "doug.cmd get_fps"

	// refreshScript returns "<clients> <camera>..." for every view not flagged HIDE.
	// Nodes without the wcs_num_clients variable report "unsupported" as the first element.
	refreshScript = `
if {[catch {get_global_var wcs_num_clients} result]} {
	set result unsupported
}
foreach view [doug.display get -views] {
	set view [lindex [split $view .] end]
	if {[string first "HIDE" [doug.view $view get -flags]] == -1} {
		lappend result [doug.view $view get -camera]
	}
}
return $result
`

	// assignScript switches the first visible view to the camera given as its only substitution.
	assignScript = `
foreach view [doug.display get -views] {
	set view [lindex [split $view .] end]
	if {[string first "HIDE" [doug.view $view get -flags]] == -1} {
		doug.view $view set -camera %s
		return
	}
}
`
)

// NewClient creates an interfaces.RenderNodeClient speaking the web commanding server protocol:
// POST http://addr:port/command with form field edge_command, reply <…><result>text</result></…>.
// Panics on nil client or logger.
//
// Parameters: client is the HTTP client; its Timeout bounds every command (main uses command_timeout_ms).
//
// Called from cmd/main; used by service.registry (Probe/IsHeadless/Refresh) and service.router (AssignCamera).
func NewClient(client *http.Client, logger log.Logger) interfaces.RenderNodeClient {
	return &commandClient{
		client: helpers.NilPanic(client, "adapters.wcs.client.go: http client is required"),
		logger: log.With(helpers.NilPanic(logger, "adapters.wcs.client.go: logger is required"), "component", "wcs"),
	}
}

type commandClient struct {
	client *http.Client
	logger log.Logger
}

// commandReply is the XML envelope of a command reply; the root element name is not checked.
type commandReply struct {
	Result *struct {
		Text string `xml:",chardata"`
	} `xml:"result"`
}

// Probe reads the cameras the node can render and its display views.
func (c *commandClient) Probe(ctx context.Context, addr netip.Addr, port int) (domain.CameraSet, []string, error) {
	camerasText, err := c.send(ctx, addr, port, camerasCommand)
	if err != nil {
		return nil, nil, err
	}
	cameras, err := splitList(camerasText)
	if err != nil {
		return nil, nil, service.NewProtocolError(fmt.Sprintf("%s: bad camera list", endpoint(addr, port)), err)
	}

	viewsText, err := c.send(ctx, addr, port, viewsCommand)
	if err != nil {
		return nil, nil, err
	}
	rawViews, err := splitList(viewsText)
	if err != nil {
		return nil, nil, service.NewProtocolError(fmt.Sprintf("%s: bad view list", endpoint(addr, port)), err)
	}
	views := make([]string, 0, len(rawViews))
	for _, v := range rawViews {
		views = append(views, v[strings.LastIndex(v, ".")+1:])
	}

	return domain.NewCameraSet(cameras...), views, nil
}

// IsHeadless reports whether the node renders at zero frames per second.
func (c *commandClient) IsHeadless(ctx context.Context, addr netip.Addr, port int) (bool, error) {
	text, err := c.send(ctx, addr, port, fpsCommand)
	if err != nil {
		return false, err
	}
	fps, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return false, service.NewProtocolError(fmt.Sprintf("%s: bad frame rate %q", endpoint(addr, port), text), err)
	}
	return fps == 0, nil
}

// Refresh reads the viewer count and the cameras of the visible views in one round trip.
func (c *commandClient) Refresh(ctx context.Context, addr netip.Addr, port int) (domain.ClientCount, domain.CameraSet, error) {
	text, err := c.send(ctx, addr, port, refreshScript)
	if err != nil {
		return 0, nil, err
	}
	items, err := splitList(text)
	if err != nil {
		return 0, nil, service.NewProtocolError(fmt.Sprintf("%s: bad refresh reply", endpoint(addr, port)), err)
	}
	if len(items) == 0 {
		return 0, nil, service.NewProtocolError(fmt.Sprintf("%s: empty refresh reply", endpoint(addr, port)), nil)
	}

	count := domain.ClientCountUnsupported
	if n, err := strconv.Atoi(items[0]); err == nil && n >= 0 {
		count = domain.ClientCount(n)
	}
	return count, domain.NewCameraSet(items[1:]...), nil
}

// AssignCamera tells the node to show camera in its first visible view.
func (c *commandClient) AssignCamera(ctx context.Context, addr netip.Addr, port int, camera string) error {
	level.Info(c.logger).Log("msg", "commanding render node", "node", endpoint(addr, port), "camera", camera)
	_, err := c.send(ctx, addr, port, fmt.Sprintf(assignScript, quoteWord(camera)))
	return err
}

// send posts one command and returns the text of the <result> element.
func (c *commandClient) send(ctx context.Context, addr netip.Addr, port int, command string) (string, error) {
	target := endpoint(addr, port)
	form := url.Values{commandField: {command}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+target+commandPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", service.NewInternalServerError("build render node request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", service.NewUnreachableError(fmt.Sprintf("%s unreachable", target), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", service.NewUnreachableError(fmt.Sprintf("%s returned %d", target, resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", service.NewUnreachableError(fmt.Sprintf("%s reply interrupted", target), err)
	}

	var reply commandReply
	if err := xml.Unmarshal(body, &reply); err != nil {
		return "", service.NewProtocolError(fmt.Sprintf("%s replied with malformed XML", target), err)
	}
	if reply.Result == nil {
		return "", service.NewProtocolError(fmt.Sprintf("%s reply has no result element", target), nil)
	}
	level.Debug(c.logger).Log("msg", "command done", "node", target, "result", reply.Result.Text)
	return reply.Result.Text, nil
}

func endpoint(addr netip.Addr, port int) string {
	return netip.AddrPortFrom(addr, uint16(port)).String()
}
