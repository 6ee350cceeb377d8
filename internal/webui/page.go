package webui

const setupPageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Spur Enrichment Setup</title>
  <style>
    body { font-family: "Segoe UI", sans-serif; margin: 0; background: #f4f6fa; color: #1f2937; }
    .wrap { max-width: 640px; margin: 0 auto; padding: 24px; }
    .panel { background: #fff; border-radius: 10px; box-shadow: 0 6px 24px rgba(15,23,42,.08); padding: 20px; }
    label { display: block; margin-top: 14px; font-weight: 600; }
    input { width: 100%; padding: 9px; margin-top: 4px; border: 1px solid #cbd5e1; border-radius: 6px; box-sizing: border-box; }
    button { margin-top: 18px; padding: 10px 18px; border: 0; border-radius: 6px; background: #1d4ed8; color: #fff; cursor: pointer; }
    button:disabled { background: #93a5d6; cursor: default; }
    #log { margin-top: 16px; min-height: 80px; white-space: pre-wrap; font-family: monospace; font-size: 13px;
           border: 1px solid #d1d5db; border-radius: 6px; padding: 10px; background: #f9fafb; }
    .warn { color: #92400e; }
    .err { color: #b91c1c; }
    .hidden { display: none; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="panel">
      <h2>Spur Enrichment Setup</h2>
      <form id="form">
        <label>Context-API token
          <input id="token" type="password" placeholder="leave blank to keep the existing token" />
        </label>
        <label id="threshold-row">Low balance alert threshold
          <input id="threshold" placeholder="0" />
        </label>
        <label id="url-row">Context-API URL
          <input id="url" placeholder="https://api.spur.us/v2/context/" />
        </label>
        <button id="submit" type="submit">Complete setup</button>
      </form>
      <div id="log"></div>
    </div>
  </div>
  <script>
    const log = document.getElementById('log');
    const submit = document.getElementById('submit');
    const append = (cls, text) => {
      const line = document.createElement('div');
      if (cls) line.className = cls;
      line.textContent = text;
      log.appendChild(line);
      log.scrollTop = log.scrollHeight;
    };

    async function loadState() {
      const resp = await fetch('/api/setup/state');
      const st = await resp.json();
      if (st.skip_setup) {
        append('', 'Already configured; setup is not required.');
        submit.disabled = true;
        return;
      }
      if (st.threshold.availability === 'unavailable')
        document.getElementById('threshold-row').classList.add('hidden');
      else
        document.getElementById('threshold').value = st.threshold.value || '';
      if (st.context_url.availability === 'unavailable')
        document.getElementById('url-row').classList.add('hidden');
      else
        document.getElementById('url').value = st.context_url.value || '';
      (st.warnings || []).forEach(w => append('warn', 'warning: ' + w));
    }

    const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/api/setup/events');
    ws.onmessage = (m) => {
      const ev = JSON.parse(m.data);
      if (ev.type === 'state') append('', 'stage: ' + ev.state);
    };

    document.getElementById('form').addEventListener('submit', async (e) => {
      e.preventDefault();
      submit.disabled = true;
      const body = JSON.stringify({
        token: document.getElementById('token').value,
        threshold: document.getElementById('threshold').value,
        context_url: document.getElementById('url').value,
      });
      const resp = await fetch('/api/setup/complete', { method: 'POST', headers: {'Content-Type': 'application/json'}, body });
      const out = await resp.json();
      (out.warnings || []).forEach(w => append('warn', 'warning: ' + w));
      if (out.status === 'fatal-error') {
        append('err', 'failed at ' + out.stage + ': ' + out.error);
        submit.disabled = false;
        return;
      }
      append('', 'setup complete');
      if (out.redirect) setTimeout(() => { location.href = out.redirect.path; }, out.redirect.delay_ms);
    });

    loadState();
  </script>
</body>
</html>`
