package devserver

// shellPage is the debug shell served at "/". It renders the route table
// and current router state, lets you trigger navigations, and tails the
// router event feed over WebSocket.
const shellPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>navkit dev shell</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 0; padding: 20px; }
h1 { color: #6cf; font-size: 18px; }
h2 { color: #9c9; font-size: 14px; margin-top: 24px; }
pre { background: #1a1a1a; padding: 12px; border-radius: 6px; border: 1px solid #333; overflow: auto; }
#events div { padding: 2px 0; border-bottom: 1px solid #222; }
input { background: #1a1a1a; color: #ddd; border: 1px solid #333; padding: 6px; width: 280px; }
button { background: #246; color: #ddd; border: 0; padding: 6px 12px; cursor: pointer; }
</style>
</head>
<body>
<h1>navkit dev shell</h1>

<h2>Navigate</h2>
<input id="url" placeholder="/users/42" value="/">
<button onclick="navigate()">Go</button>

<h2>State</h2>
<pre id="state">(none)</pre>

<h2>Routes</h2>
<pre id="routes">(loading)</pre>

<h2>Events</h2>
<div id="events"></div>

<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/navkit/events');

        ws.onopen = function() {
            console.log('[navkit] Event feed connected');
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            var line = document.createElement('div');
            line.textContent = msg.description;
            var events = document.getElementById('events');
            events.insertBefore(line, events.firstChild);
            if (msg.kind === 'NavigationEnd') {
                refreshState();
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function refreshState() {
        fetch('/navkit/state').then(function(r) { return r.json(); }).then(function(s) {
            document.getElementById('state').textContent = JSON.stringify(s, null, 2);
        });
    }

    function refreshRoutes() {
        fetch('/navkit/routes').then(function(r) { return r.json(); }).then(function(s) {
            document.getElementById('routes').textContent = JSON.stringify(s.routes, null, 2);
        });
    }

    window.navigate = function() {
        fetch('/navkit/navigate', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({url: document.getElementById('url').value})
        }).then(refreshState);
    };

    connect();
    refreshState();
    refreshRoutes();
})();
</script>
</body>
</html>
`
