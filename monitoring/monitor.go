// Package monitoring serves a built fabric over HTTP so that its routers,
// links, controllers, and buffers can be inspected while the tool runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"reflect"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/octopi/octopi"
	"github.com/sarchlab/octopi/ruby"
	"github.com/sarchlab/octopi/sim/id"
	"github.com/sarchlab/octopi/sim/naming"
	"github.com/shirou/gopsutil/process"
	"github.com/sirupsen/logrus"
	"github.com/syifan/goseth"
)

// Monitor turns a fabric into a server that can be inspected.
type Monitor struct {
	lock       sync.RWMutex
	fabric     *octopi.Fabric
	components []naming.Named
	buffers    []*ruby.MessageBuffer
	portNumber int

	idGenerator     id.Generator
	profileDuration time.Duration

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		idGenerator:     id.NewSequentialGenerator(),
		profileDuration: time.Second,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		logrus.Warnf("Port number %d is not allowed for the monitoring "+
			"server. Using a random port instead.", portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterFabric makes the routers, controllers, core complexes, and buffers
// of a fabric available.
func (m *Monitor) RegisterFabric(f *octopi.Fabric) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.fabric = f

	for _, r := range f.Routers() {
		m.components = append(m.components, r)
	}

	for _, c := range f.Topology().Controllers() {
		m.components = append(m.components, c)
	}

	for _, cc := range f.CoreComplexes() {
		m.components = append(m.components, cc)
	}

	m.buffers = append(m.buffers, f.Topology().Buffers()...)
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c naming.Named) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.components = append(m.components, c)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGenerator.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the HTTP routes of the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/topology", m.reportTopology)
	r.HandleFunc("/api/buffers", m.listBuffers)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring fabric with %s\n", url)

	go func() {
		err := http.Serve(listener, m.Handler())
		dieOnErr(err)
	}()

	return url, nil
}

// OpenInBrowser opens the monitor's topology page in the default browser.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url + "/api/topology")
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	names := make([]string, len(m.components))
	for i, c := range m.components {
		names[i] = c.Name()
	}

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	component := m.findComponentOr404(w, req.CompName)
	if component == nil {
		return
	}

	if _, err := m.walkFields(component, req.FieldName); err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	dieOnErr(err)

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type routerRsp struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Latency int    `json:"latency"`
}

type extLinkRsp struct {
	ID         int    `json:"id"`
	Controller string `json:"controller"`
	Router     string `json:"router"`
}

type intLinkRsp struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Dst string `json:"dst"`
}

type topologyRsp struct {
	Name               string       `json:"name"`
	Protocol           string       `json:"protocol"`
	NumVirtualNetworks int          `json:"num_virtual_networks"`
	NumSequencers      int          `json:"num_sequencers"`
	Routers            []routerRsp  `json:"routers"`
	ExtLinks           []extLinkRsp `json:"ext_links"`
	IntLinks           []intLinkRsp `json:"int_links"`
}

func (m *Monitor) reportTopology(w http.ResponseWriter, _ *http.Request) {
	m.lock.RLock()
	f := m.fabric
	m.lock.RUnlock()

	if f == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No fabric registered"))
		dieOnErr(err)

		return
	}

	rsp := topologyRsp{
		Name:               f.Name(),
		Protocol:           f.Protocol().String(),
		NumVirtualNetworks: f.NumVirtualNetworks(),
		NumSequencers:      f.NumSequencers(),
	}

	for _, r := range f.Routers() {
		rsp.Routers = append(rsp.Routers, routerRsp{
			ID:      r.ID(),
			Name:    r.Name(),
			Kind:    r.Kind().String(),
			Latency: r.Latency(),
		})
	}

	for _, l := range f.ExtLinks() {
		rsp.ExtLinks = append(rsp.ExtLinks, extLinkRsp{
			ID:         l.ID(),
			Controller: l.ExtNode().Name(),
			Router:     l.IntNode().Name(),
		})
	}

	for _, l := range f.IntLinks() {
		rsp.IntLinks = append(rsp.IntLinks, intLinkRsp{
			ID:  l.ID(),
			Src: l.Src().Name(),
			Dst: l.Dst().Name(),
		})
	}

	writeJSON(w, rsp)
}

type bufferRsp struct {
	Buffer string `json:"buffer"`
	Router string `json:"router"`
	VNet   int    `json:"vnet"`
	Cap    int    `json:"cap"`
}

func (m *Monitor) listBuffers(w http.ResponseWriter, r *http.Request) {
	router, limit, offset, err := m.buffersParseParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	selected := m.sortAndSelectBuffers(router, limit, offset)

	rsp := make([]bufferRsp, len(selected))
	for i, b := range selected {
		rsp[i] = bufferRsp{
			Buffer: b.Name(),
			Router: b.Router.Name(),
			VNet:   b.VNet,
			Cap:    b.Capacity,
		}
	}

	writeJSON(w, rsp)
}

func (*Monitor) buffersParseParams(
	r *http.Request,
) (router string, limit, offset int, err error) {
	router = r.URL.Query().Get("router")

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "0"
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		return "", 0, 0, fmt.Errorf("invalid limit %q", limitStr)
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		offsetStr = "0"
	}

	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return "", 0, 0, fmt.Errorf("invalid offset %q", offsetStr)
	}

	return router, limit, offset, nil
}

// sortAndSelectBuffers sorts the buffers by router and virtual network.
// A limit of 0 means no limit.
func (m *Monitor) sortAndSelectBuffers(
	router string,
	limit, offset int,
) []*ruby.MessageBuffer {
	m.lock.RLock()
	selected := make([]*ruby.MessageBuffer, 0, len(m.buffers))
	for _, b := range m.buffers {
		if router == "" || b.Router.Name() == router {
			selected = append(selected, b)
		}
	}
	m.lock.RUnlock()

	sort.SliceStable(selected, func(i, j int) bool {
		ri, rj := selected[i].Router.ID(), selected[j].Router.ID()
		if ri != rj {
			return ri < rj
		}

		return selected[i].VNet < selected[j].VNet
	})

	if offset > len(selected) {
		offset = len(selected)
	}

	end := len(selected)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return selected[offset:end]
}

type fieldFormatError struct {
	field string
}

func (e fieldFormatError) Error() string {
	return fmt.Sprintf("cannot find field %q", e.field)
}

func (m *Monitor) walkFields(
	comp any,
	fields string,
) (reflect.Value, error) {
	elem := reflect.ValueOf(comp)

	fieldNames := strings.Split(fields, ".")

	for len(fieldNames) > 0 {
		switch elem.Kind() {
		case reflect.Ptr, reflect.Interface:
			elem = elem.Elem()
		case reflect.Struct:
			elem = elem.FieldByName(fieldNames[0])
			fieldNames = fieldNames[1:]
		case reflect.Slice:
			index, err := strconv.Atoi(fieldNames[0])
			if err != nil || index < 0 || index >= elem.Len() {
				return elem, fieldFormatError{field: fields}
			}

			elem = elem.Index(index)
			fieldNames = fieldNames[1:]
		default:
			return elem, fieldFormatError{field: fields}
		}
	}

	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	if !elem.IsValid() {
		return elem, fieldFormatError{field: fields}
	}

	return elem, nil
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) naming.Named {
	m.lock.RLock()
	defer m.lock.RUnlock()

	var component naming.Named
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

var errProfiling = errors.New("a profile is already being collected")

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", errProfiling)

		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
