package serve

// liveScript is appended to the rendered chart page. It shows the summary sent by /ws
// and reloads the page when the server says the tables changed.
const liveScript = `
(function () {
  var status = document.createElement("div");
  status.id = "sankey-status";
  status.style.cssText = "position:fixed;bottom:0;left:0;padding:4px 8px;font:12px monospace;background:#eee;";
  document.body.appendChild(status);

  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "summary") {
      status.textContent = msg.data.nodes + " nodes, " + msg.data.edges + " links, total flow " + msg.data.total;
    } else if (msg.type === "reload") {
      location.reload();
    } else if (msg.type === "error") {
      status.textContent = "error: " + msg.data;
    }
  };
  ws.onclose = function () {
    status.textContent += " (disconnected)";
  };
})();
`
